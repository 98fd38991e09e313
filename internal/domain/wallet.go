package domain

import "time"

// StartingBalance is the balance a wallet is initialized with on first use:
// ₹10,00,000 in paise.
const StartingBalance int64 = 100_000_000

// Wallet is an account's cash ledger. AvailableBalance never goes negative;
// TotalInvested is a signed running total (buys add, sells subtract) and may
// drift negative when sells exceed tracked buys.
type Wallet struct {
	AccountID        string
	AvailableBalance int64 // paise
	TotalInvested    int64 // paise
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
