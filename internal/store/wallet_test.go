package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"tradesim/internal/domain"
)

func TestEnsureWallet_InitializesOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	w, err := s.EnsureWallet(ctx, "a1")
	if err != nil {
		t.Fatalf("EnsureWallet: %v", err)
	}
	if w.AvailableBalance != domain.StartingBalance {
		t.Errorf("balance = %d, want %d", w.AvailableBalance, domain.StartingBalance)
	}
	if w.TotalInvested != 0 {
		t.Errorf("total invested = %d, want 0", w.TotalInvested)
	}

	// Spend some, then ensure again: the balance must not reset.
	err = s.WithTx(ctx, func(tx *sql.Tx) error {
		return s.DebitWalletTx(ctx, tx, "a1", 50000)
	})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	w, err = s.EnsureWallet(ctx, "a1")
	if err != nil {
		t.Fatalf("EnsureWallet second call: %v", err)
	}
	if w.AvailableBalance != domain.StartingBalance-50000 {
		t.Errorf("balance = %d, want %d", w.AvailableBalance, domain.StartingBalance-50000)
	}
}

func TestDebitWalletTx(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.EnsureWallet(ctx, "a1"); err != nil {
		t.Fatalf("EnsureWallet: %v", err)
	}

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		return s.DebitWalletTx(ctx, tx, "a1", 245050)
	})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	w, _ := s.EnsureWallet(ctx, "a1")
	if w.AvailableBalance != domain.StartingBalance-245050 {
		t.Errorf("balance = %d, want %d", w.AvailableBalance, domain.StartingBalance-245050)
	}
	if w.TotalInvested != 245050 {
		t.Errorf("total invested = %d, want 245050", w.TotalInvested)
	}
}

func TestDebitWalletTx_InsufficientBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.EnsureWallet(ctx, "a1"); err != nil {
		t.Fatalf("EnsureWallet: %v", err)
	}

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		return s.DebitWalletTx(ctx, tx, "a1", domain.StartingBalance+1)
	})

	var balanceErr *domain.InsufficientBalanceError
	if !errors.As(err, &balanceErr) {
		t.Fatalf("expected InsufficientBalanceError, got %v", err)
	}
	if balanceErr.Required != domain.StartingBalance+1 {
		t.Errorf("required = %d, want %d", balanceErr.Required, domain.StartingBalance+1)
	}
	if balanceErr.Available != domain.StartingBalance {
		t.Errorf("available = %d, want %d", balanceErr.Available, domain.StartingBalance)
	}

	// The failed debit must not change the balance.
	w, _ := s.EnsureWallet(ctx, "a1")
	if w.AvailableBalance != domain.StartingBalance {
		t.Errorf("balance changed after failed debit: %d", w.AvailableBalance)
	}
}

func TestCreditWalletTx_SignedTotalInvested(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.EnsureWallet(ctx, "a1"); err != nil {
		t.Fatalf("EnsureWallet: %v", err)
	}

	// Credit with no prior buy: total invested goes negative.
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		return s.CreditWalletTx(ctx, tx, "a1", 100000)
	})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}

	w, _ := s.EnsureWallet(ctx, "a1")
	if w.AvailableBalance != domain.StartingBalance+100000 {
		t.Errorf("balance = %d, want %d", w.AvailableBalance, domain.StartingBalance+100000)
	}
	if w.TotalInvested != -100000 {
		t.Errorf("total invested = %d, want -100000", w.TotalInvested)
	}
}
