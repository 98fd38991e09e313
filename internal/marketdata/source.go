// Package marketdata provides the price oracle: live quote sources tried in
// sequence, with failures recovered by the caller via cached prices.
package marketdata

import (
	"context"

	"tradesim/internal/domain"
)

// Source is a single quote provider. Implementations must bound their own
// network calls and return an error rather than blocking indefinitely.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// GetQuote returns a current market snapshot for (symbol, exchange).
	GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error)
}
