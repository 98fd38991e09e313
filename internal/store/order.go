package store

import (
	"context"
	"database/sql"
	"errors"

	"tradesim/internal/domain"
)

const orderColumns = `id, account_id, symbol, exchange, side, style, quantity,
	limit_price, status, executed_price, executed_quantity, remaining_quantity,
	created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.AccountID, &o.Symbol, &o.Exchange, &o.Side, &o.Style,
		&o.Quantity, &o.LimitPrice, &o.Status, &o.ExecutedPrice,
		&o.ExecutedQuantity, &o.RemainingQuantity, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// InsertOrderTx inserts a new order row inside tx.
func (s *Store) InsertOrderTx(ctx context.Context, tx *sql.Tx, o *domain.Order) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, account_id, symbol, exchange, side, style, quantity,
			limit_price, status, executed_price, executed_quantity, remaining_quantity,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.AccountID, o.Symbol, o.Exchange, o.Side, o.Style, o.Quantity,
		o.LimitPrice, o.Status, o.ExecutedPrice, o.ExecutedQuantity,
		o.RemainingQuantity, o.CreatedAt, o.UpdatedAt)
	return err
}

// FinalizeOrderTx persists an order's post-execution state inside tx.
func (s *Store) FinalizeOrderTx(ctx context.Context, tx *sql.Tx, o *domain.Order) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, executed_price = ?, executed_quantity = ?,
			remaining_quantity = ?, updated_at = ?
		WHERE id = ?`,
		o.Status, o.ExecutedPrice, o.ExecutedQuantity, o.RemainingQuantity,
		o.UpdatedAt, o.ID)
	return err
}

// GetOrder retrieves an order by ID scoped to the owning account. It returns
// domain.ErrOrderNotFound for both unknown IDs and orders owned by another
// account.
func (s *Store) GetOrder(ctx context.Context, accountID, orderID string) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE id = ? AND account_id = ?`, orderID, accountID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	return o, err
}

// ListOrders returns all orders for an account, newest first.
func (s *Store) ListOrders(ctx context.Context, accountID string) ([]*domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// OpenLimitOrders returns every open (NEW, PLACED, PARTIALLY_EXECUTED) limit
// order across all symbols. Used to rebuild the in-memory depth book at
// startup.
func (s *Store) OpenLimitOrders(ctx context.Context) ([]*domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE style = 'LIMIT' AND status IN ('NEW', 'PLACED', 'PARTIALLY_EXECUTED')
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
