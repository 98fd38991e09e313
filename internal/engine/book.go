package engine

import (
	"sync"
	"time"

	"github.com/google/btree"

	"tradesim/internal/domain"
)

// BookEntry is a single open limit order projected into the depth view.
// Quantity fields reflect the order's remaining (not original) size.
type BookEntry struct {
	OrderID           string
	Price             int64 // paise
	ExecutedQuantity  int64
	RemainingQuantity int64
	Status            domain.OrderStatus
	CreatedAt         time.Time
}

// bidLess defines ordering for the bid side: price descending, then
// created_at ascending, then order_id ascending. Min() returns the best
// bid (highest price, earliest time).
func bidLess(a, b BookEntry) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID < b.OrderID
}

// askLess defines ordering for the ask side: price ascending, then
// created_at ascending, then order_id ascending.
func askLess(a, b BookEntry) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID < b.OrderID
}

// DepthBook holds the open limit orders for a single symbol in two B-trees
// ordered by price-time priority.
type DepthBook struct {
	symbol string
	mu     sync.RWMutex
	bids   *btree.BTreeG[BookEntry]
	asks   *btree.BTreeG[BookEntry]
}

// NewDepthBook creates a depth book for the given symbol.
func NewDepthBook(symbol string) *DepthBook {
	const degree = 32
	return &DepthBook{
		symbol: symbol,
		bids:   btree.NewG[BookEntry](degree, bidLess),
		asks:   btree.NewG[BookEntry](degree, askLess),
	}
}

// Insert adds an entry to the side implied by the order side.
func (b *DepthBook) Insert(side domain.OrderSide, entry BookEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if side == domain.OrderSideBuy {
		b.bids.ReplaceOrInsert(entry)
	} else {
		b.asks.ReplaceOrInsert(entry)
	}
}

// TopBids returns up to n bid entries, best price first.
func (b *DepthBook) TopBids(n int) []BookEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return topEntries(b.bids, n)
}

// TopAsks returns up to n ask entries, best price first.
func (b *DepthBook) TopAsks(n int) []BookEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return topEntries(b.asks, n)
}

func topEntries(tree *btree.BTreeG[BookEntry], n int) []BookEntry {
	if n <= 0 {
		return nil
	}
	entries := make([]BookEntry, 0, n)
	tree.Ascend(func(entry BookEntry) bool {
		if len(entries) >= n {
			return false
		}
		entries = append(entries, entry)
		return true
	})
	return entries
}

// DepthManager is a thread-safe map of symbol → DepthBook.
type DepthManager struct {
	mu    sync.RWMutex
	books map[string]*DepthBook
}

// NewDepthManager creates an empty DepthManager.
func NewDepthManager() *DepthManager {
	return &DepthManager{books: make(map[string]*DepthBook)}
}

// GetOrCreate returns the depth book for the given symbol, creating one if
// it doesn't already exist.
func (dm *DepthManager) GetOrCreate(symbol string) *DepthBook {
	dm.mu.RLock()
	book, ok := dm.books[symbol]
	dm.mu.RUnlock()
	if ok {
		return book
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()
	// Double-check after acquiring write lock.
	if book, ok = dm.books[symbol]; ok {
		return book
	}
	book = NewDepthBook(symbol)
	dm.books[symbol] = book
	return book
}

// Track projects an order into the depth view if it is an open limit order
// with remaining quantity.
func (dm *DepthManager) Track(o *domain.Order) {
	if o.Style != domain.OrderStyleLimit || !o.IsOpen() || o.RemainingQuantity <= 0 {
		return
	}
	dm.GetOrCreate(o.Symbol).Insert(o.Side, BookEntry{
		OrderID:           o.ID,
		Price:             o.LimitPrice,
		ExecutedQuantity:  o.ExecutedQuantity,
		RemainingQuantity: o.RemainingQuantity,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
	})
}

// Rebuild repopulates the depth view from a list of open limit orders,
// typically loaded from the ledger store at startup.
func (dm *DepthManager) Rebuild(orders []*domain.Order) {
	dm.mu.Lock()
	dm.books = make(map[string]*DepthBook)
	dm.mu.Unlock()

	for _, o := range orders {
		dm.Track(o)
	}
}
