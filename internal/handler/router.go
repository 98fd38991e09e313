package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"tradesim/internal/service"
)

type contextKey string

const accountKey contextKey = "account"

// accountID returns the account resolved for the request.
func accountID(r *http.Request) string {
	if v, ok := r.Context().Value(accountKey).(string); ok {
		return v
	}
	return ""
}

// NewRouter creates a chi router with all routes registered, request logging,
// Content-Type validation, and account resolution middleware.
func NewRouter(
	orderSvc *service.OrderService,
	tradeSvc *service.TradeService,
	portfolioSvc *service.PortfolioService,
	walletSvc *service.WalletService,
	instrumentSvc *service.InstrumentService,
	bookSvc *service.OrderBookService,
	defaultAccount string,
	logger zerolog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)
	r.Use(resolveAccount(defaultAccount))

	// Create handlers.
	orderH := NewOrderHandler(orderSvc)
	tradeH := NewTradeHandler(tradeSvc)
	portfolioH := NewPortfolioHandler(portfolioSvc)
	walletH := NewWalletHandler(walletSvc)
	instrumentH := NewInstrumentHandler(instrumentSvc)
	bookH := NewOrderBookHandler(bookSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Order routes.
	r.Post("/orders", orderH.PlaceOrder)
	r.Get("/orders", orderH.ListOrders)
	r.Get("/orders/{orderId}", orderH.GetOrder)

	// Trade log.
	r.Get("/trades", tradeH.List)

	// Portfolio and wallet.
	r.Get("/portfolio", portfolioH.List)
	r.Get("/wallet", walletH.GetBalance)

	// Market data.
	r.Get("/instruments", instrumentH.List)
	r.Get("/orderbook/{symbol}", bookH.GetDepth)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration.
func requestLogging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest,
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// resolveAccount is middleware that resolves the acting account from the
// X-Account-ID header, falling back to the configured default account.
func resolveAccount(defaultAccount string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := strings.TrimSpace(r.Header.Get("X-Account-ID"))
			if account == "" {
				account = defaultAccount
			}
			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
