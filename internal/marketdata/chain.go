package marketdata

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"tradesim/internal/domain"
)

// Chain tries each configured source once, in order, under a single bounded
// timeout. When every source fails it returns domain.ErrQuoteUnavailable so
// callers fall back to the instrument's stored price. A single attempt per
// source, no retry: a stale cached price beats a slow order placement.
type Chain struct {
	sources []Source
	timeout time.Duration
	logger  zerolog.Logger
}

// NewChain creates an oracle over the given sources.
func NewChain(sources []Source, timeout time.Duration, logger zerolog.Logger) *Chain {
	return &Chain{
		sources: sources,
		timeout: timeout,
		logger:  logger.With().Str("component", "marketdata").Logger(),
	}
}

// GetQuote returns the first successful quote, or domain.ErrQuoteUnavailable.
func (c *Chain) GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	for _, src := range c.sources {
		if ctx.Err() != nil {
			break
		}

		quote, err := src.GetQuote(ctx, symbol, exchange)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("source", src.Name()).
				Str("symbol", symbol).
				Str("exchange", exchange).
				Msg("Quote source failed")
			continue
		}
		if quote.LastTradedPrice <= 0 {
			c.logger.Warn().
				Str("source", src.Name()).
				Str("symbol", symbol).
				Msg("Quote source returned non-positive price")
			continue
		}

		c.logger.Debug().
			Str("source", src.Name()).
			Str("symbol", symbol).
			Int64("ltp", quote.LastTradedPrice).
			Msg("Quote fetched")
		return quote, nil
	}

	return nil, domain.ErrQuoteUnavailable
}

// CurrentPrice is a thin projection of GetQuote used for execution pricing.
func (c *Chain) CurrentPrice(ctx context.Context, symbol, exchange string) (int64, error) {
	quote, err := c.GetQuote(ctx, symbol, exchange)
	if err != nil {
		return 0, err
	}
	return quote.LastTradedPrice, nil
}
