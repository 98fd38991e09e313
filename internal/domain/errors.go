package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrInstrumentNotFound = errors.New("instrument_not_found")
	ErrOrderNotFound      = errors.New("order_not_found")
	ErrWalletNotFound     = errors.New("wallet_not_found")
	ErrQuoteUnavailable   = errors.New("quote_unavailable")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientBalanceError rejects a buy whose notional exceeds the wallet's
// available balance. Both amounts are in paise; the message reports rupees.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance. Required: ₹%.2f, Available: ₹%.2f",
		PaiseToRupees(e.Required), PaiseToRupees(e.Available))
}
