package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradesim/internal/domain"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource fetches quotes from the Yahoo Finance chart API. It needs no
// API key and serves as the secondary source behind Kite.
type YahooSource struct {
	baseURL string
	client  *http.Client
}

// NewYahooSource creates a Yahoo-backed quote source with the given request
// timeout.
func NewYahooSource(timeout time.Duration) *YahooSource {
	return &YahooSource{
		baseURL: defaultYahooBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewYahooSourceWithURL creates a source against a custom endpoint. Used by
// tests to point at a local server.
func NewYahooSourceWithURL(baseURL string, timeout time.Duration) *YahooSource {
	return &YahooSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Source.
func (y *YahooSource) Name() string { return "yahoo" }

// chartResponse mirrors the subset of the Yahoo chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				PreviousClose        float64 `json:"previousClose"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketOpen    float64 `json:"regularMarketOpen"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// GetQuote fetches the last traded price for the Yahoo-suffixed symbol
// (.NS for NSE, .BO for everything else).
func (y *YahooSource) GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error) {
	suffix := ".BO"
	if exchange == "NSE" {
		suffix = ".NS"
	}
	url := fmt.Sprintf("%s/v8/finance/chart/%s%s?interval=1d&range=1d", y.baseURL, symbol, suffix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("yahoo response decode failed: %w", err)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo returned no result for %s", symbol)
	}

	meta := payload.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	if price == 0 {
		price = meta.PreviousClose
	}
	if price == 0 {
		price = meta.ChartPreviousClose
	}
	if price == 0 {
		return nil, fmt.Errorf("yahoo returned no price for %s", symbol)
	}

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}

	change := 0.0
	changePercent := 0.0
	if previousClose > 0 {
		change = price - previousClose
		changePercent = (change / previousClose) * 100
	}

	return &domain.Quote{
		Symbol:          symbol,
		Exchange:        exchange,
		LastTradedPrice: domain.PaiseFromFloat(price),
		Change:          domain.PaiseFromFloat(change),
		ChangePercent:   changePercent,
		Volume:          meta.RegularMarketVolume,
		High:            domain.PaiseFromFloat(meta.RegularMarketDayHigh),
		Low:             domain.PaiseFromFloat(meta.RegularMarketDayLow),
		Open:            domain.PaiseFromFloat(meta.RegularMarketOpen),
	}, nil
}
