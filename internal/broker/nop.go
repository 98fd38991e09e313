package broker

import (
	"context"
	"fmt"
	"sync/atomic"

	"tradesim/internal/domain"
)

// NopBroker accepts every mirror request locally without any network call.
// Used when no broker credentials are configured and in tests.
type NopBroker struct {
	counter atomic.Int64
}

// NewNopBroker creates a no-op broker mirror.
func NewNopBroker() *NopBroker {
	return &NopBroker{}
}

// Name implements Broker.
func (n *NopBroker) Name() string { return "nop" }

// MirrorOrder assigns a synthetic broker order ID and succeeds.
func (n *NopBroker) MirrorOrder(ctx context.Context, order *domain.Order) (*Result, error) {
	id := n.counter.Add(1)
	return &Result{OrderID: fmt.Sprintf("SIM%06d", id), Status: "PLACED"}, nil
}
