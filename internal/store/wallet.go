package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tradesim/internal/domain"
)

// EnsureWallet returns the wallet for accountID, lazily creating it with the
// starting balance on first use. The INSERT OR IGNORE makes repeated calls
// idempotent: a concurrent or later call never re-initializes the balance.
func (s *Store) EnsureWallet(ctx context.Context, accountID string) (*domain.Wallet, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO wallets (account_id, available_balance)
		VALUES (?, ?)`, accountID, domain.StartingBalance)
	if err != nil {
		return nil, err
	}
	return s.getWallet(ctx, s.db, accountID)
}

// WalletTx reads the wallet inside tx. Unlike EnsureWallet it does not
// create missing rows; callers inside order transactions ensure the wallet
// first.
func (s *Store) WalletTx(ctx context.Context, tx *sql.Tx, accountID string) (*domain.Wallet, error) {
	return s.getWallet(ctx, tx, accountID)
}

func (s *Store) getWallet(ctx context.Context, q execer, accountID string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := q.QueryRowContext(ctx, `
		SELECT account_id, available_balance, total_invested, created_at, updated_at
		FROM wallets
		WHERE account_id = ?`, accountID).
		Scan(&w.AccountID, &w.AvailableBalance, &w.TotalInvested, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DebitWalletTx atomically debits amount from available balance and credits
// total invested, inside tx. The guarded UPDATE enforces the non-negative
// balance invariant at the point of application: when the balance no longer
// covers the amount it returns InsufficientBalanceError and changes nothing.
func (s *Store) DebitWalletTx(ctx context.Context, tx *sql.Tx, accountID string, amount int64) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET available_balance = available_balance - ?,
			total_invested = total_invested + ?,
			updated_at = ?
		WHERE account_id = ? AND available_balance >= ?`,
		amount, amount, time.Now().UTC(), accountID, amount)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		w, err := s.getWallet(ctx, tx, accountID)
		if err != nil {
			return err
		}
		return &domain.InsufficientBalanceError{Required: amount, Available: w.AvailableBalance}
	}
	return nil
}

// CreditWalletTx atomically credits amount to available balance and debits
// total invested, inside tx. Total invested is a signed ledger and is
// allowed to go negative.
func (s *Store) CreditWalletTx(ctx context.Context, tx *sql.Tx, accountID string, amount int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET available_balance = available_balance + ?,
			total_invested = total_invested - ?,
			updated_at = ?
		WHERE account_id = ?`,
		amount, amount, time.Now().UTC(), accountID)
	return err
}
