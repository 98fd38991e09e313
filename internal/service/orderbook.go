package service

import (
	"time"

	"tradesim/internal/engine"
)

// DepthSnapshot is an instant-in-time view of the top of the book for one
// symbol. Unknown symbols yield empty sides.
type DepthSnapshot struct {
	Symbol     string
	Bids       []engine.BookEntry
	Asks       []engine.BookEntry
	SnapshotAt time.Time
}

// OrderBookService projects open limit orders into a depth view.
type OrderBookService struct {
	depth  *engine.DepthManager
	levels int
}

// NewOrderBookService creates a new OrderBookService returning up to levels
// entries per side.
func NewOrderBookService(depth *engine.DepthManager, levels int) *OrderBookService {
	return &OrderBookService{depth: depth, levels: levels}
}

// GetDepth returns the top bid and ask orders for the symbol in price-time
// priority. Read-only: it never mutates ledger state.
func (s *OrderBookService) GetDepth(symbol string) *DepthSnapshot {
	book := s.depth.GetOrCreate(symbol)
	return &DepthSnapshot{
		Symbol:     symbol,
		Bids:       book.TopBids(s.levels),
		Asks:       book.TopAsks(s.levels),
		SnapshotAt: time.Now().UTC(),
	}
}
