package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

func newTestTradeService(t *testing.T) *TradeService {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewTradeService(st)
}

func TestTradeList_FilterValidation(t *testing.T) {
	svc := newTestTradeService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  TradeFilterRequest
	}{
		{"bad side", TradeFilterRequest{Side: "HOLD"}},
		{"bad from date", TradeFilterRequest{FromDate: "not-a-date"}},
		{"bad to date", TradeFilterRequest{ToDate: "31-12-2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(ctx, "a1", tt.req)
			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestTradeList_AcceptedDateFormats(t *testing.T) {
	svc := newTestTradeService(t)
	ctx := context.Background()

	valid := []TradeFilterRequest{
		{},
		{Side: "BUY"},
		{Side: "SELL"},
		{FromDate: "2026-03-10"},
		{ToDate: "2026-03-10T15:30:00Z"},
		{Symbol: "RELIANCE", Side: "BUY", FromDate: "2026-01-01", ToDate: "2026-12-31"},
	}
	for _, req := range valid {
		if _, err := svc.List(ctx, "a1", req); err != nil {
			t.Errorf("List(%+v) unexpected error: %v", req, err)
		}
	}
}
