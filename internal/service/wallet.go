package service

import (
	"context"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

// WalletService serves cash balance snapshots.
type WalletService struct {
	store *store.Store
}

// NewWalletService creates a new WalletService.
func NewWalletService(st *store.Store) *WalletService {
	return &WalletService{store: st}
}

// GetBalance returns the account's wallet, lazily initializing it with the
// starting balance on first use. Safe to call repeatedly.
func (s *WalletService) GetBalance(ctx context.Context, accountID string) (*domain.Wallet, error) {
	return s.store.EnsureWallet(ctx, accountID)
}

// HasSufficientBalance reports whether the account's available balance covers
// amount in paise. Advisory only: the engine re-checks under its own lock, so
// a true result here can still lose to a concurrent order.
func (s *WalletService) HasSufficientBalance(ctx context.Context, accountID string, amount int64) (bool, error) {
	w, err := s.store.EnsureWallet(ctx, accountID)
	if err != nil {
		return false, err
	}
	return w.AvailableBalance >= amount, nil
}
