package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"tradesim/internal/domain"
)

// newTestStore creates a Store backed by a temp-file database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertOrder writes an order through the transactional path.
func insertOrder(t *testing.T, s *Store, o *domain.Order) {
	t.Helper()
	err := s.WithTx(context.Background(), func(tx *sql.Tx) error {
		return s.InsertOrderTx(context.Background(), tx, o)
	})
	if err != nil {
		t.Fatalf("failed to insert order: %v", err)
	}
}

func newOrder(id, accountID string, side domain.OrderSide, style domain.OrderStyle, qty int64, createdAt time.Time) *domain.Order {
	return &domain.Order{
		ID:                id,
		AccountID:         accountID,
		Symbol:            "RELIANCE",
		Exchange:          "BSE",
		Side:              side,
		Style:             style,
		Quantity:          qty,
		Status:            domain.OrderStatusNew,
		RemainingQuantity: qty,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestSeedInstruments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	instruments, err := s.ListInstruments(ctx)
	if err != nil {
		t.Fatalf("ListInstruments: %v", err)
	}
	if len(instruments) != 20 {
		t.Errorf("expected 20 seeded instruments, got %d", len(instruments))
	}

	in, err := s.GetInstrument(ctx, "RELIANCE", "BSE")
	if err != nil {
		t.Fatalf("GetInstrument: %v", err)
	}
	if in.LastTradedPrice != 245050 {
		t.Errorf("RELIANCE price = %d, want 245050", in.LastTradedPrice)
	}

	// Seeding is idempotent across reopens of the same file.
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()
	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()
	instruments, err = second.ListInstruments(ctx)
	if err != nil {
		t.Fatalf("ListInstruments after reopen: %v", err)
	}
	if len(instruments) != 20 {
		t.Errorf("expected 20 instruments after reopen, got %d", len(instruments))
	}
}

func TestGetInstrument_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetInstrument(context.Background(), "NOSUCH", "BSE")
	if err != domain.ErrInstrumentNotFound {
		t.Errorf("expected ErrInstrumentNotFound, got %v", err)
	}
}

func TestUpdateInstrumentPrice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpdateInstrumentPrice(ctx, "TCS", "BSE", 350000); err != nil {
		t.Fatalf("UpdateInstrumentPrice: %v", err)
	}
	in, err := s.GetInstrument(ctx, "TCS", "BSE")
	if err != nil {
		t.Fatalf("GetInstrument: %v", err)
	}
	if in.LastTradedPrice != 350000 {
		t.Errorf("price = %d, want 350000", in.LastTradedPrice)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	o := newOrder("o1", "a1", domain.OrderSideBuy, domain.OrderStyleMarket, 10, time.Now().UTC())
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.InsertOrderTx(ctx, tx, o); err != nil {
			return err
		}
		return context.Canceled
	})
	if err == nil {
		t.Fatal("expected error from transaction")
	}

	if _, err := s.GetOrder(ctx, "a1", "o1"); err != domain.ErrOrderNotFound {
		t.Errorf("order should have been rolled back, got %v", err)
	}
}
