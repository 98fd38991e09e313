package store

import (
	"context"
	"database/sql"
	"errors"

	"tradesim/internal/domain"
)

// GetHoldingTx retrieves the holding for (accountID, symbol) inside tx.
// Returns (nil, nil) when the account has never held the symbol.
func (s *Store) GetHoldingTx(ctx context.Context, tx *sql.Tx, accountID, symbol string) (*domain.Holding, error) {
	var h domain.Holding
	err := tx.QueryRowContext(ctx, `
		SELECT account_id, symbol, quantity, average_buy_price, current_value, realized_pnl, updated_at
		FROM holdings
		WHERE account_id = ? AND symbol = ?`, accountID, symbol).
		Scan(&h.AccountID, &h.Symbol, &h.Quantity, &h.AverageBuyPrice,
			&h.CurrentValue, &h.RealizedPnL, &h.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpsertHoldingTx writes the holding row inside tx, creating it on the
// first buy fill for a symbol.
func (s *Store) UpsertHoldingTx(ctx context.Context, tx *sql.Tx, h *domain.Holding) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO holdings (account_id, symbol, quantity, average_buy_price, current_value, realized_pnl, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, symbol) DO UPDATE SET
			quantity = excluded.quantity,
			average_buy_price = excluded.average_buy_price,
			current_value = excluded.current_value,
			realized_pnl = excluded.realized_pnl,
			updated_at = excluded.updated_at`,
		h.AccountID, h.Symbol, h.Quantity, h.AverageBuyPrice, h.CurrentValue,
		h.RealizedPnL, h.UpdatedAt)
	return err
}

// ListHoldings returns an account's non-empty positions ordered by symbol.
func (s *Store) ListHoldings(ctx context.Context, accountID string) ([]*domain.Holding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_id, symbol, quantity, average_buy_price, current_value, realized_pnl, updated_at
		FROM holdings
		WHERE account_id = ? AND quantity > 0
		ORDER BY symbol`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := make([]*domain.Holding, 0)
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(&h.AccountID, &h.Symbol, &h.Quantity, &h.AverageBuyPrice,
			&h.CurrentValue, &h.RealizedPnL, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, &h)
	}
	return holdings, rows.Err()
}
