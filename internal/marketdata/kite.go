package marketdata

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"tradesim/internal/domain"
)

// KiteSource fetches live quotes from the Zerodha Kite Connect API.
type KiteSource struct {
	client *kiteconnect.Client
}

// KiteConfig holds Kite Connect credentials for the quote source.
type KiteConfig struct {
	APIKey      string
	AccessToken string
	Timeout     time.Duration
}

// NewKiteSource creates a Kite-backed quote source.
func NewKiteSource(cfg KiteConfig) *KiteSource {
	client := kiteconnect.New(cfg.APIKey)
	if cfg.AccessToken != "" {
		client.SetAccessToken(cfg.AccessToken)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &KiteSource{client: client}
}

// Name implements Source.
func (k *KiteSource) Name() string { return "kite" }

// GetQuote fetches a quote keyed by EXCHANGE:SYMBOL, the Kite instrument
// identifier format.
func (k *KiteSource) GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error) {
	key := fmt.Sprintf("%s:%s", exchange, symbol)

	quotes, err := k.client.GetQuote(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	q, ok := quotes[key]
	if !ok {
		return nil, fmt.Errorf("quote not found for instrument: %s", key)
	}

	changePercent := 0.0
	if q.OHLC.Close != 0 {
		changePercent = (q.NetChange / q.OHLC.Close) * 100
	}

	return &domain.Quote{
		Symbol:          symbol,
		Exchange:        exchange,
		LastTradedPrice: domain.PaiseFromFloat(q.LastPrice),
		Change:          domain.PaiseFromFloat(q.NetChange),
		ChangePercent:   changePercent,
		Volume:          int64(q.Volume),
		High:            domain.PaiseFromFloat(q.OHLC.High),
		Low:             domain.PaiseFromFloat(q.OHLC.Low),
		Open:            domain.PaiseFromFloat(q.OHLC.Open),
	}, nil
}
