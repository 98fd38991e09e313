package engine

import (
	"testing"

	"pgregory.net/rapid"

	"tradesim/internal/domain"
)

func TestProperty_MarketOrdersFillInFull(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		qty := rapid.Int64Range(1, 1_000_000).Draw(t, "qty")

		p := NewRandomFillPolicy(seed)
		if got := p.FillQuantity(domain.OrderStyleMarket, qty); got != qty {
			t.Fatalf("market fill = %d, want full %d", got, qty)
		}
	})
}

func TestProperty_LimitFillWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		qty := rapid.Int64Range(1, 1_000_000).Draw(t, "qty")

		p := NewRandomFillPolicy(seed)
		fill := p.FillQuantity(domain.OrderStyleLimit, qty)

		if fill < 0 || fill > qty {
			t.Fatalf("fill %d outside [0, %d]", fill, qty)
		}
		// floor(qty × f) with f ∈ [0.5, 0.7).
		min := int64(float64(qty) * limitFillBase)
		max := int64(float64(qty) * (limitFillBase + limitFillSpan))
		if fill < min-1 || fill > max {
			t.Fatalf("fill %d outside expected range [%d, %d] for qty %d", fill, min-1, max, qty)
		}
	})
}

func TestProperty_SameSeedSameFills(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		qty := rapid.Int64Range(1, 1_000_000).Draw(t, "qty")

		a := NewRandomFillPolicy(seed)
		b := NewRandomFillPolicy(seed)
		for i := 0; i < 5; i++ {
			if fa, fb := a.FillQuantity(domain.OrderStyleLimit, qty), b.FillQuantity(domain.OrderStyleLimit, qty); fa != fb {
				t.Fatalf("draw %d diverged: %d vs %d", i, fa, fb)
			}
		}
	})
}
