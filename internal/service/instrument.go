package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"tradesim/internal/domain"
	"tradesim/internal/marketdata"
	"tradesim/internal/store"
)

// InstrumentQuote is an instrument enriched with live market data where a
// quote source responded. Live is false when the stored price was used.
type InstrumentQuote struct {
	Instrument    *domain.Instrument
	Live          bool
	Change        int64 // paise
	ChangePercent float64
	Volume        int64
	High          int64 // paise
	Low           int64 // paise
	Open          int64 // paise
}

// InstrumentService lists the tradable universe with live-refreshed prices.
type InstrumentService struct {
	store  *store.Store
	oracle *marketdata.Chain
	logger zerolog.Logger
}

// NewInstrumentService creates a new InstrumentService.
func NewInstrumentService(st *store.Store, oracle *marketdata.Chain, logger zerolog.Logger) *InstrumentService {
	return &InstrumentService{
		store:  st,
		oracle: oracle,
		logger: logger.With().Str("component", "instruments").Logger(),
	}
}

// List returns all instruments, refreshing each price from the oracle in
// parallel. Instruments whose quote fails keep their stored price; refreshed
// prices are written back to the store best-effort.
func (s *InstrumentService) List(ctx context.Context) ([]*InstrumentQuote, error) {
	instruments, err := s.store.ListInstruments(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]*InstrumentQuote, len(instruments))
	var wg sync.WaitGroup
	for i, in := range instruments {
		quotes[i] = &InstrumentQuote{Instrument: in}

		wg.Add(1)
		go func(i int, in *domain.Instrument) {
			defer wg.Done()

			quote, err := s.oracle.GetQuote(ctx, in.Symbol, in.Exchange)
			if err != nil {
				return
			}

			in.LastTradedPrice = quote.LastTradedPrice
			quotes[i].Live = true
			quotes[i].Change = quote.Change
			quotes[i].ChangePercent = quote.ChangePercent
			quotes[i].Volume = quote.Volume
			quotes[i].High = quote.High
			quotes[i].Low = quote.Low
			quotes[i].Open = quote.Open

			if err := s.store.UpdateInstrumentPrice(ctx, in.Symbol, in.Exchange, quote.LastTradedPrice); err != nil {
				s.logger.Warn().
					Err(err).
					Str("symbol", in.Symbol).
					Msg("Failed to persist refreshed price")
			}
		}(i, in)
	}
	wg.Wait()

	return quotes, nil
}
