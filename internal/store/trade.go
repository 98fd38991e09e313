package store

import (
	"context"
	"database/sql"
	"time"

	"tradesim/internal/domain"
)

// TradeFilter narrows ListTrades results. Zero values mean "no filter".
type TradeFilter struct {
	Symbol string
	Side   domain.OrderSide
	From   time.Time
	To     time.Time
}

// InsertTradeTx appends a trade record inside tx. Trades are never updated
// or deleted afterwards.
func (s *Store) InsertTradeTx(ctx context.Context, tx *sql.Tx, t *domain.Trade) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO trades (id, account_id, order_id, symbol, exchange, side, quantity, price, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.OrderID, t.Symbol, t.Exchange, t.Side, t.Quantity,
		t.Price, t.ExecutedAt)
	return err
}

// ListTrades returns an account's trades matching the filter, newest first.
func (s *Store) ListTrades(ctx context.Context, accountID string, f TradeFilter) ([]*domain.Trade, error) {
	query := `
		SELECT id, account_id, order_id, symbol, exchange, side, quantity, price, executed_at
		FROM trades
		WHERE account_id = ?`
	args := []any{accountID}

	if f.Symbol != "" {
		query += ` AND symbol = ?`
		args = append(args, f.Symbol)
	}
	if f.Side != "" {
		query += ` AND side = ?`
		args = append(args, f.Side)
	}
	if !f.From.IsZero() {
		query += ` AND executed_at >= ?`
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		query += ` AND executed_at <= ?`
		args = append(args, f.To)
	}
	query += ` ORDER BY executed_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		var t domain.Trade
		if err := rows.Scan(&t.ID, &t.AccountID, &t.OrderID, &t.Symbol, &t.Exchange,
			&t.Side, &t.Quantity, &t.Price, &t.ExecutedAt); err != nil {
			return nil, err
		}
		trades = append(trades, &t)
	}
	return trades, rows.Err()
}

// TradesByOrder returns all trades produced by a single order, oldest first.
func (s *Store) TradesByOrder(ctx context.Context, orderID string) ([]*domain.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, order_id, symbol, exchange, side, quantity, price, executed_at
		FROM trades
		WHERE order_id = ?
		ORDER BY executed_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		var t domain.Trade
		if err := rows.Scan(&t.ID, &t.AccountID, &t.OrderID, &t.Symbol, &t.Exchange,
			&t.Side, &t.Quantity, &t.Price, &t.ExecutedAt); err != nil {
			return nil, err
		}
		trades = append(trades, &t)
	}
	return trades, rows.Err()
}
