package domain

import "time"

// Holding represents an account's position in a single symbol.
type Holding struct {
	AccountID       string
	Symbol          string
	Quantity        int64
	AverageBuyPrice int64 // paise, integer weighted mean
	CurrentValue    int64 // paise, quantity × last fill price
	RealizedPnL     int64 // paise
	UpdatedAt       time.Time
}

// ApplyBuy folds a buy fill into the position. The average buy price is
// recomputed as the quantity-weighted mean of the old position and the fill,
// using integer paise arithmetic.
func (h *Holding) ApplyBuy(quantity, price int64) {
	totalCost := h.AverageBuyPrice*h.Quantity + price*quantity
	h.Quantity += quantity
	h.AverageBuyPrice = totalCost / h.Quantity
	h.CurrentValue = h.Quantity * price
}

// ApplySell folds a sell fill into the position. The quantity floors at zero
// (no short positions) and the average buy price is left unchanged unless the
// position is fully closed, in which case it resets to zero. Realized P&L
// accrues on the portion actually held.
func (h *Holding) ApplySell(quantity, price int64) {
	sold := quantity
	if sold > h.Quantity {
		sold = h.Quantity
	}
	h.RealizedPnL += (price - h.AverageBuyPrice) * sold

	h.Quantity -= quantity
	if h.Quantity <= 0 {
		h.Quantity = 0
		h.AverageBuyPrice = 0
	}
	h.CurrentValue = h.Quantity * price
}
