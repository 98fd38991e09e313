package engine

import (
	"math/rand"
	"sync"

	"tradesim/internal/domain"
)

// FillPolicy decides how much of an incoming order executes immediately.
// It stands in for a real matching engine: swapping the implementation is
// enough to replace the simulation with genuine order matching, without
// touching the ledger or account code.
type FillPolicy interface {
	// FillQuantity returns the quantity to execute now, in [0, quantity].
	FillQuantity(style domain.OrderStyle, quantity int64) int64
}

// Partial-fill fraction bounds for limit orders: uniform in [0.5, 0.7).
const (
	limitFillBase = 0.5
	limitFillSpan = 0.2
)

// RandomFillPolicy fills market orders in full and limit orders at a
// pseudo-random fraction of the requested quantity, simulating partial
// counter-party liquidity.
type RandomFillPolicy struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomFillPolicy creates a policy seeded for reproducibility in tests.
func NewRandomFillPolicy(seed int64) *RandomFillPolicy {
	return &RandomFillPolicy{rnd: rand.New(rand.NewSource(seed))}
}

// FillQuantity implements FillPolicy. For limit orders the result is
// floor(quantity × f) with f drawn uniformly from [0.5, 0.7); small
// quantities can therefore floor to zero, leaving the order fully resting.
func (p *RandomFillPolicy) FillQuantity(style domain.OrderStyle, quantity int64) int64 {
	if style == domain.OrderStyleMarket {
		return quantity
	}

	p.mu.Lock()
	fraction := limitFillBase + p.rnd.Float64()*limitFillSpan
	p.mu.Unlock()

	return int64(float64(quantity) * fraction)
}
