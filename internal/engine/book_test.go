package engine

import (
	"fmt"
	"testing"
	"time"

	"tradesim/internal/domain"
)

func entry(id string, price int64, createdAt time.Time) BookEntry {
	return BookEntry{
		OrderID:           id,
		Price:             price,
		RemainingQuantity: 1,
		Status:            domain.OrderStatusPlaced,
		CreatedAt:         createdAt,
	}
}

func TestDepthBook_BidOrdering(t *testing.T) {
	book := NewDepthBook("RELIANCE")
	base := time.Now().UTC()

	book.Insert(domain.OrderSideBuy, entry("low", 240000, base))
	book.Insert(domain.OrderSideBuy, entry("high", 250000, base.Add(time.Second)))
	book.Insert(domain.OrderSideBuy, entry("mid", 245000, base.Add(2*time.Second)))

	bids := book.TopBids(5)
	if len(bids) != 3 {
		t.Fatalf("expected 3 bids, got %d", len(bids))
	}
	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if bids[i].OrderID != id {
			t.Errorf("bids[%d] = %s, want %s", i, bids[i].OrderID, id)
		}
	}
}

func TestDepthBook_AskOrdering(t *testing.T) {
	book := NewDepthBook("RELIANCE")
	base := time.Now().UTC()

	book.Insert(domain.OrderSideSell, entry("high", 250000, base))
	book.Insert(domain.OrderSideSell, entry("low", 240000, base.Add(time.Second)))

	asks := book.TopAsks(5)
	if len(asks) != 2 {
		t.Fatalf("expected 2 asks, got %d", len(asks))
	}
	if asks[0].OrderID != "low" || asks[1].OrderID != "high" {
		t.Errorf("wrong ask ordering: %s, %s", asks[0].OrderID, asks[1].OrderID)
	}
}

func TestDepthBook_TimeBreaksPriceTies(t *testing.T) {
	book := NewDepthBook("RELIANCE")
	base := time.Now().UTC()

	book.Insert(domain.OrderSideBuy, entry("second", 245000, base.Add(time.Second)))
	book.Insert(domain.OrderSideBuy, entry("first", 245000, base))

	bids := book.TopBids(5)
	if bids[0].OrderID != "first" || bids[1].OrderID != "second" {
		t.Errorf("earlier order should rank first at equal price: %s, %s",
			bids[0].OrderID, bids[1].OrderID)
	}
}

func TestDepthBook_TopNLimit(t *testing.T) {
	book := NewDepthBook("RELIANCE")
	base := time.Now().UTC()

	for i := 0; i < 8; i++ {
		book.Insert(domain.OrderSideBuy, entry(fmt.Sprintf("o%d", i), int64(240000+i*100), base))
	}

	bids := book.TopBids(5)
	if len(bids) != 5 {
		t.Errorf("expected 5 bids, got %d", len(bids))
	}
	// Best bid is the highest price.
	if bids[0].Price != 240700 {
		t.Errorf("best bid price = %d, want 240700", bids[0].Price)
	}
}

func TestDepthManager_TrackSkipsNonRestingOrders(t *testing.T) {
	dm := NewDepthManager()
	now := time.Now().UTC()

	market := &domain.Order{
		ID: "m1", Symbol: "TCS", Side: domain.OrderSideBuy,
		Style: domain.OrderStyleMarket, Status: domain.OrderStatusExecuted,
		CreatedAt: now,
	}
	dm.Track(market)

	executed := &domain.Order{
		ID: "l1", Symbol: "TCS", Side: domain.OrderSideBuy,
		Style: domain.OrderStyleLimit, Status: domain.OrderStatusExecuted,
		LimitPrice: 345000, CreatedAt: now,
	}
	dm.Track(executed)

	resting := &domain.Order{
		ID: "l2", Symbol: "TCS", Side: domain.OrderSideBuy,
		Style: domain.OrderStyleLimit, Status: domain.OrderStatusPlaced,
		LimitPrice: 345000, RemainingQuantity: 5, CreatedAt: now,
	}
	dm.Track(resting)

	bids := dm.GetOrCreate("TCS").TopBids(5)
	if len(bids) != 1 || bids[0].OrderID != "l2" {
		t.Errorf("only the resting limit order should be tracked: %+v", bids)
	}
}

func TestDepthManager_Rebuild(t *testing.T) {
	dm := NewDepthManager()
	now := time.Now().UTC()

	stale := &domain.Order{
		ID: "old", Symbol: "INFY", Side: domain.OrderSideSell,
		Style: domain.OrderStyleLimit, Status: domain.OrderStatusPlaced,
		LimitPrice: 152000, RemainingQuantity: 2, CreatedAt: now,
	}
	dm.Track(stale)

	fresh := &domain.Order{
		ID: "new", Symbol: "INFY", Side: domain.OrderSideSell,
		Style: domain.OrderStyleLimit, Status: domain.OrderStatusPlaced,
		LimitPrice: 153000, RemainingQuantity: 4, CreatedAt: now,
	}
	dm.Rebuild([]*domain.Order{fresh})

	asks := dm.GetOrCreate("INFY").TopAsks(5)
	if len(asks) != 1 || asks[0].OrderID != "new" {
		t.Errorf("rebuild should replace prior state: %+v", asks)
	}
}
