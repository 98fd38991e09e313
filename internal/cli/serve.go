package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradesim/internal/broker"
	"tradesim/internal/config"
	"tradesim/internal/engine"
	"tradesim/internal/handler"
	"tradesim/internal/logging"
	"tradesim/internal/marketdata"
	"tradesim/internal/service"
	"tradesim/internal/store"
)

func newServeCmd(logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			logger = logging.New(cfg.Logging)
			return runServer(cmd.Context(), cfg, logger)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	st, err := store.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	// Quote oracle: sources are tried in order, Kite before Yahoo when both
	// are enabled.
	var sources []marketdata.Source
	if cfg.MarketData.KiteEnabled {
		sources = append(sources, marketdata.NewKiteSource(marketdata.KiteConfig{
			APIKey:      cfg.Kite.APIKey,
			AccessToken: cfg.Kite.AccessToken,
			Timeout:     cfg.MarketData.QuoteTimeout,
		}))
	}
	if cfg.MarketData.YahooEnabled {
		sources = append(sources, marketdata.NewYahooSource(cfg.MarketData.QuoteTimeout))
	}
	oracle := marketdata.NewChain(sources, cfg.MarketData.QuoteTimeout, logger)

	var brk broker.Broker = broker.NewNopBroker()
	if cfg.MarketData.KiteEnabled {
		brk = broker.NewKiteBroker(broker.KiteConfig{
			APIKey:      cfg.Kite.APIKey,
			AccessToken: cfg.Kite.AccessToken,
			Timeout:     cfg.MarketData.QuoteTimeout,
		})
	}

	seed := cfg.Engine.FillSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	policy := engine.NewRandomFillPolicy(seed)

	// Background price drift, paused outside market hours.
	simCtx, simCancel := context.WithCancel(ctx)
	defer simCancel()
	if cfg.MarketData.SimulatorEnabled {
		sim := marketdata.NewSimulator(st, cfg.MarketData.SimulatorInterval, seed, logger)
		go sim.Run(simCtx)
	}

	eng := engine.New(st, oracle, brk, policy, logger)
	if err := eng.RestoreDepth(ctx); err != nil {
		return err
	}

	// Services.
	orderSvc := service.NewOrderService(eng, st)
	tradeSvc := service.NewTradeService(st)
	portfolioSvc := service.NewPortfolioService(st)
	walletSvc := service.NewWalletService(st)
	instrumentSvc := service.NewInstrumentService(st, oracle, logger)
	bookSvc := service.NewOrderBookService(eng.Depth(), cfg.Engine.DepthLevels)

	router := handler.NewRouter(
		orderSvc, tradeSvc, portfolioSvc, walletSvc, instrumentSvc, bookSvc,
		cfg.Server.DefaultAccount, logger,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case <-ctx.Done():
		logger.Info().Msg("Context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
		return err
	}

	logger.Info().Msg("Server stopped")
	return nil
}
