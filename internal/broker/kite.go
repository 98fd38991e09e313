package broker

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"tradesim/internal/domain"
)

// KiteBroker mirrors orders to Zerodha Kite Connect.
type KiteBroker struct {
	client *kiteconnect.Client
}

// KiteConfig holds Kite Connect credentials for the broker mirror.
type KiteConfig struct {
	APIKey      string
	AccessToken string
	Timeout     time.Duration
}

// NewKiteBroker creates a Kite-backed broker mirror.
func NewKiteBroker(cfg KiteConfig) *KiteBroker {
	client := kiteconnect.New(cfg.APIKey)
	if cfg.AccessToken != "" {
		client.SetAccessToken(cfg.AccessToken)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &KiteBroker{client: client}
}

// Name implements Broker.
func (k *KiteBroker) Name() string { return "kite" }

// MirrorOrder places a regular CNC day order matching the local order.
func (k *KiteBroker) MirrorOrder(ctx context.Context, order *domain.Order) (*Result, error) {
	params := kiteconnect.OrderParams{
		Exchange:        order.Exchange,
		Tradingsymbol:   order.Symbol,
		TransactionType: string(order.Side),
		OrderType:       string(order.Style),
		Product:         kiteconnect.ProductCNC,
		Quantity:        int(order.Quantity),
		Validity:        "DAY",
	}
	if order.Style == domain.OrderStyleLimit {
		params.Price = domain.PaiseToRupees(order.LimitPrice)
	}

	resp, err := k.client.PlaceOrder(kiteconnect.VarietyRegular, params)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	return &Result{OrderID: resp.OrderID, Status: "PLACED"}, nil
}
