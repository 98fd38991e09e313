package service

import (
	"context"
	"path/filepath"
	"testing"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

func newTestWalletService(t *testing.T) *WalletService {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewWalletService(st)
}

func TestGetBalance_Idempotent(t *testing.T) {
	svc := newTestWalletService(t)
	ctx := context.Background()

	first, err := svc.GetBalance(ctx, "a1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	second, err := svc.GetBalance(ctx, "a1")
	if err != nil {
		t.Fatalf("GetBalance second call: %v", err)
	}
	if first.AvailableBalance != domain.StartingBalance {
		t.Errorf("balance = %d, want %d", first.AvailableBalance, domain.StartingBalance)
	}
	if second.AvailableBalance != first.AvailableBalance {
		t.Errorf("repeated call changed balance: %d vs %d", second.AvailableBalance, first.AvailableBalance)
	}
}

func TestHasSufficientBalance(t *testing.T) {
	svc := newTestWalletService(t)
	ctx := context.Background()

	ok, err := svc.HasSufficientBalance(ctx, "a1", domain.StartingBalance)
	if err != nil {
		t.Fatalf("HasSufficientBalance: %v", err)
	}
	if !ok {
		t.Error("exact balance should be sufficient")
	}

	ok, err = svc.HasSufficientBalance(ctx, "a1", domain.StartingBalance+1)
	if err != nil {
		t.Fatalf("HasSufficientBalance: %v", err)
	}
	if ok {
		t.Error("amount above balance should be insufficient")
	}
}
