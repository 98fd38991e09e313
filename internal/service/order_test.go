package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"tradesim/internal/broker"
	"tradesim/internal/domain"
	"tradesim/internal/engine"
	"tradesim/internal/store"
)

type stubOracle struct{ price int64 }

func (o *stubOracle) GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error) {
	return &domain.Quote{Symbol: symbol, Exchange: exchange, LastTradedPrice: o.price}, nil
}

type fullFillPolicy struct{}

func (fullFillPolicy) FillQuantity(style domain.OrderStyle, quantity int64) int64 {
	return quantity
}

func newTestOrderService(t *testing.T) (*OrderService, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	eng := engine.New(st, &stubOracle{price: 250000}, broker.NewNopBroker(), fullFillPolicy{}, zerolog.Nop())
	return NewOrderService(eng, st), st
}

func floatPtr(f float64) *float64 { return &f }

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		AccountID: "a1",
		Symbol:    "RELIANCE",
		Exchange:  "BSE",
		Side:      domain.OrderSideBuy,
		Style:     domain.OrderStyleMarket,
		Quantity:  10,
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*PlaceOrderRequest)
	}{
		{"bad side", func(r *PlaceOrderRequest) { r.Side = "HOLD" }},
		{"bad style", func(r *PlaceOrderRequest) { r.Style = "STOP" }},
		{"lowercase symbol", func(r *PlaceOrderRequest) { r.Symbol = "reliance" }},
		{"empty symbol", func(r *PlaceOrderRequest) { r.Symbol = "" }},
		{"symbol too long", func(r *PlaceOrderRequest) { r.Symbol = "ABCDEFGHIJKLMNOPQRSTU" }},
		{"bad exchange", func(r *PlaceOrderRequest) { r.Exchange = "NYSE" }},
		{"zero quantity", func(r *PlaceOrderRequest) { r.Quantity = 0 }},
		{"negative quantity", func(r *PlaceOrderRequest) { r.Quantity = -5 }},
		{"quantity over cap", func(r *PlaceOrderRequest) { r.Quantity = maxOrderQuantity + 1 }},
		{"limit without price", func(r *PlaceOrderRequest) { r.Style = domain.OrderStyleLimit }},
		{"limit zero price", func(r *PlaceOrderRequest) {
			r.Style = domain.OrderStyleLimit
			r.Price = floatPtr(0)
		}},
		{"limit negative price", func(r *PlaceOrderRequest) {
			r.Style = domain.OrderStyleLimit
			r.Price = floatPtr(-10)
		}},
		{"limit excess precision", func(r *PlaceOrderRequest) {
			r.Style = domain.OrderStyleLimit
			r.Price = floatPtr(2450.505)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.PlaceOrder(ctx, req)
			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestPlaceOrder_MarketIgnoresPrice(t *testing.T) {
	svc, _ := newTestOrderService(t)

	req := validRequest()
	req.Price = floatPtr(1.0)
	order, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.LimitPrice != 0 {
		t.Errorf("limit price = %d, want 0 for market order", order.LimitPrice)
	}
	if order.ExecutedPrice != 250000 {
		t.Errorf("executed price = %d, want oracle 250000", order.ExecutedPrice)
	}
}

func TestPlaceOrder_LimitConvertsRupees(t *testing.T) {
	svc, _ := newTestOrderService(t)

	req := validRequest()
	req.Style = domain.OrderStyleLimit
	req.Price = floatPtr(2450.50)
	order, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.LimitPrice != 245050 {
		t.Errorf("limit price = %d, want 245050", order.LimitPrice)
	}
}

func TestGetOrder_RoundTrip(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, validRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	got, err := svc.GetOrder(ctx, "a1", placed.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.ID != placed.ID || got.Status != domain.OrderStatusExecuted {
		t.Errorf("unexpected order: %+v", got)
	}

	if _, err := svc.GetOrder(ctx, "a2", placed.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for foreign account, got %v", err)
	}
}
