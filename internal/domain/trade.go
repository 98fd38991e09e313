package domain

import "time"

// Trade records a single (partial or full) execution of an order.
// Trades are append-only: once written they are never updated or deleted.
type Trade struct {
	ID         string
	AccountID  string
	OrderID    string
	Symbol     string
	Exchange   string
	Side       OrderSide
	Quantity   int64
	Price      int64 // paise
	ExecutedAt time.Time
}
