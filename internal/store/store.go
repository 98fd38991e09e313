// Package store provides the SQLite-backed ledger store. It owns all
// persisted state: instruments, orders, trades, holdings, and wallets.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the durable ledger store backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath, initializes the
// schema, and seeds the instrument table on first run.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := s.seedInstruments(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed instruments: %w", err)
	}

	return s, nil
}

// initSchema creates all required tables and indexes.
func (s *Store) initSchema() error {
	schema := `
	-- Instruments: reference prices, one row per (symbol, exchange)
	CREATE TABLE IF NOT EXISTS instruments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		exchange TEXT NOT NULL,
		instrument_type TEXT NOT NULL,
		last_traded_price INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(symbol, exchange)
	);

	-- Orders: full lifecycle, executed + remaining always equals quantity
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		exchange TEXT NOT NULL,
		side TEXT NOT NULL CHECK(side IN ('BUY', 'SELL')),
		style TEXT NOT NULL CHECK(style IN ('MARKET', 'LIMIT')),
		quantity INTEGER NOT NULL CHECK(quantity > 0),
		limit_price INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'NEW' CHECK(status IN ('NEW', 'PLACED', 'PARTIALLY_EXECUTED', 'EXECUTED', 'CANCELLED')),
		executed_price INTEGER NOT NULL DEFAULT 0,
		executed_quantity INTEGER NOT NULL DEFAULT 0,
		remaining_quantity INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_account ON orders(account_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_orders_symbol_status ON orders(symbol, status);

	-- Trades: immutable execution log, one row per fill
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		order_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		exchange TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price INTEGER NOT NULL,
		executed_at DATETIME NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id)
	);
	CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id, executed_at DESC);

	-- Holdings: one position per (account, symbol)
	CREATE TABLE IF NOT EXISTS holdings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		average_buy_price INTEGER NOT NULL DEFAULT 0,
		current_value INTEGER NOT NULL DEFAULT 0,
		realized_pnl INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		UNIQUE(account_id, symbol)
	);

	-- Wallets: cash ledger, one row per account
	CREATE TABLE IF NOT EXISTS wallets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id TEXT NOT NULL UNIQUE,
		available_balance INTEGER NOT NULL,
		total_invested INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedInstruments inserts the default tradable universe when the
// instruments table is empty.
func (s *Store) seedInstruments() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM instruments`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		symbol string
		price  int64 // paise
	}{
		{"RELIANCE", 245050},
		{"TCS", 345075},
		{"INFY", 152025},
		{"HDFCBANK", 168000},
		{"ICICIBANK", 98050},
		{"SBIN", 62075},
		{"BHARTIARTL", 112000},
		{"WIPRO", 48025},
		{"HINDUNILVR", 250000},
		{"ITC", 45000},
		{"LT", 320000},
		{"MARUTI", 980000},
		{"ASIANPAINT", 320000},
		{"NESTLEIND", 2450000},
		{"TITAN", 350000},
		{"BAJFINANCE", 720000},
		{"HDFC", 280000},
		{"KOTAKBANK", 180000},
		{"AXISBANK", 110000},
		{"ONGC", 25000},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO instruments (symbol, exchange, instrument_type, last_traded_price) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, in := range seed {
		if _, err := stmt.Exec(in.symbol, "BSE", "EQUITY", in.price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic. All multi-step ledger mutations go through this
// so a failure mid-sequence never leaves partial state visible.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// execer abstracts *sql.DB and *sql.Tx so read helpers can run inside or
// outside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ execer = (*sql.DB)(nil)
var _ execer = (*sql.Tx)(nil)
