// Package broker provides the best-effort external broker mirror. Orders
// accepted by the engine are mirrored to the broker after local execution;
// mirror failures are logged and never affect the caller.
package broker

import (
	"context"

	"tradesim/internal/domain"
)

// Result reports the broker-side identifier for a mirrored order.
type Result struct {
	OrderID string
	Status  string
}

// Broker mirrors locally executed orders to an external brokerage.
type Broker interface {
	// Name identifies the broker in logs.
	Name() string
	// MirrorOrder forwards the order. Implementations must bound their
	// network calls; the engine swallows any error returned here.
	MirrorOrder(ctx context.Context, order *domain.Order) (*Result, error)
}
