package domain

import "time"

// OrderSide indicates whether an order buys or sells the instrument.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// OrderStyle distinguishes market orders from limit orders.
type OrderStyle string

const (
	OrderStyleMarket OrderStyle = "MARKET"
	OrderStyleLimit  OrderStyle = "LIMIT"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew               OrderStatus = "NEW"
	OrderStatusPlaced            OrderStatus = "PLACED"
	OrderStatusPartiallyExecuted OrderStatus = "PARTIALLY_EXECUTED"
	OrderStatusExecuted          OrderStatus = "EXECUTED"
	OrderStatusCancelled         OrderStatus = "CANCELLED"
)

// Order represents a buy or sell instruction for a single account.
// Invariant: ExecutedQuantity + RemainingQuantity == Quantity at all times.
type Order struct {
	ID                string
	AccountID         string
	Symbol            string
	Exchange          string
	Side              OrderSide
	Style             OrderStyle
	Quantity          int64
	LimitPrice        int64 // paise, 0 for market orders
	Status            OrderStatus
	ExecutedPrice     int64 // paise, 0 until a fill occurs
	ExecutedQuantity  int64
	RemainingQuantity int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StatusForFill returns the status implied by an order's executed and
// remaining quantities: EXECUTED when nothing remains, PARTIALLY_EXECUTED
// when some but not all quantity filled, PLACED when nothing filled yet.
func StatusForFill(executed, remaining int64) OrderStatus {
	switch {
	case executed > 0 && remaining == 0:
		return OrderStatusExecuted
	case executed > 0:
		return OrderStatusPartiallyExecuted
	default:
		return OrderStatusPlaced
	}
}

// IsOpen reports whether the order can still receive fills. CANCELLED and
// fully EXECUTED orders are terminal.
func (o *Order) IsOpen() bool {
	switch o.Status {
	case OrderStatusNew, OrderStatusPlaced, OrderStatusPartiallyExecuted:
		return true
	}
	return false
}

// Notional returns quantity × price in paise for the full order size at the
// given execution price.
func (o *Order) Notional(price int64) int64 {
	return o.Quantity * price
}
