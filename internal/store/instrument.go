package store

import (
	"context"
	"database/sql"
	"errors"

	"tradesim/internal/domain"
)

// ListInstruments returns all instruments ordered by symbol.
func (s *Store) ListInstruments(ctx context.Context) ([]*domain.Instrument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, exchange, instrument_type, last_traded_price, created_at
		FROM instruments
		ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instruments := make([]*domain.Instrument, 0)
	for rows.Next() {
		var in domain.Instrument
		if err := rows.Scan(&in.Symbol, &in.Exchange, &in.InstrumentType, &in.LastTradedPrice, &in.CreatedAt); err != nil {
			return nil, err
		}
		instruments = append(instruments, &in)
	}
	return instruments, rows.Err()
}

// GetInstrument retrieves an instrument by symbol and exchange. It returns
// domain.ErrInstrumentNotFound if no such instrument exists.
func (s *Store) GetInstrument(ctx context.Context, symbol, exchange string) (*domain.Instrument, error) {
	var in domain.Instrument
	err := s.db.QueryRowContext(ctx, `
		SELECT symbol, exchange, instrument_type, last_traded_price, created_at
		FROM instruments
		WHERE symbol = ? AND exchange = ?`, symbol, exchange).
		Scan(&in.Symbol, &in.Exchange, &in.InstrumentType, &in.LastTradedPrice, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInstrumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// InstrumentPriceBySymbol returns the stored last traded price for a symbol
// on any exchange. Holdings are keyed by symbol alone, so portfolio
// valuation uses this lookup.
func (s *Store) InstrumentPriceBySymbol(ctx context.Context, symbol string) (int64, error) {
	var price int64
	err := s.db.QueryRowContext(ctx, `
		SELECT last_traded_price FROM instruments
		WHERE symbol = ? LIMIT 1`, symbol).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrInstrumentNotFound
	}
	if err != nil {
		return 0, err
	}
	return price, nil
}

// UpdateInstrumentPrice persists a freshly discovered reference price.
// Price discovery is independent of trade success, so this runs outside
// order transactions.
func (s *Store) UpdateInstrumentPrice(ctx context.Context, symbol, exchange string, price int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE instruments SET last_traded_price = ?
		WHERE symbol = ? AND exchange = ?`, price, symbol, exchange)
	return err
}
