package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tradesim/internal/domain"
)

// fakeSource is a scripted quote source.
type fakeSource struct {
	name  string
	quote *domain.Quote
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

func TestChain_FirstSourceWins(t *testing.T) {
	first := &fakeSource{name: "first", quote: &domain.Quote{LastTradedPrice: 245050}}
	second := &fakeSource{name: "second", quote: &domain.Quote{LastTradedPrice: 999999}}
	c := NewChain([]Source{first, second}, time.Second, zerolog.Nop())

	quote, err := c.GetQuote(context.Background(), "RELIANCE", "BSE")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.LastTradedPrice != 245050 {
		t.Errorf("ltp = %d, want 245050 from first source", quote.LastTradedPrice)
	}
	if second.calls != 0 {
		t.Errorf("second source should not be consulted, got %d calls", second.calls)
	}
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &fakeSource{name: "first", err: errors.New("down")}
	second := &fakeSource{name: "second", quote: &domain.Quote{LastTradedPrice: 245050}}
	c := NewChain([]Source{first, second}, time.Second, zerolog.Nop())

	quote, err := c.GetQuote(context.Background(), "RELIANCE", "BSE")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.LastTradedPrice != 245050 {
		t.Errorf("ltp = %d, want fallback 245050", quote.LastTradedPrice)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", first.calls, second.calls)
	}
}

func TestChain_SkipsNonPositivePrices(t *testing.T) {
	first := &fakeSource{name: "first", quote: &domain.Quote{LastTradedPrice: 0}}
	second := &fakeSource{name: "second", quote: &domain.Quote{LastTradedPrice: 245050}}
	c := NewChain([]Source{first, second}, time.Second, zerolog.Nop())

	quote, err := c.GetQuote(context.Background(), "RELIANCE", "BSE")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.LastTradedPrice != 245050 {
		t.Errorf("ltp = %d, want 245050", quote.LastTradedPrice)
	}
}

func TestChain_AllSourcesFail(t *testing.T) {
	first := &fakeSource{name: "first", err: errors.New("down")}
	second := &fakeSource{name: "second", err: errors.New("also down")}
	c := NewChain([]Source{first, second}, time.Second, zerolog.Nop())

	_, err := c.GetQuote(context.Background(), "RELIANCE", "BSE")
	if !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Errorf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestChain_NoSources(t *testing.T) {
	c := NewChain(nil, time.Second, zerolog.Nop())
	_, err := c.GetQuote(context.Background(), "RELIANCE", "BSE")
	if !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Errorf("expected ErrQuoteUnavailable, got %v", err)
	}
}

func TestChain_CurrentPrice(t *testing.T) {
	src := &fakeSource{name: "src", quote: &domain.Quote{LastTradedPrice: 245050}}
	c := NewChain([]Source{src}, time.Second, zerolog.Nop())

	price, err := c.CurrentPrice(context.Background(), "RELIANCE", "BSE")
	if err != nil {
		t.Fatalf("CurrentPrice: %v", err)
	}
	if price != 245050 {
		t.Errorf("price = %d, want 245050", price)
	}
}
