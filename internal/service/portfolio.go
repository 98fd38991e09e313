package service

import (
	"context"
	"errors"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

// PortfolioPosition is a holding valued at the current market price.
// All monetary fields are paise.
type PortfolioPosition struct {
	Symbol               string
	Quantity             int64
	AverageBuyPrice      int64
	CurrentMarketPrice   int64
	CurrentValue         int64
	RealizedPnL          int64
	UnrealizedPnL        int64
	UnrealizedPnLPercent float64
	TotalPnL             int64
}

// PortfolioService projects holdings into market-valued positions.
type PortfolioService struct {
	store *store.Store
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(st *store.Store) *PortfolioService {
	return &PortfolioService{store: st}
}

// List returns the account's open positions with unrealized P&L computed
// against the instrument ledger's current price. Holdings whose instrument
// no longer exists fall back to their average buy price for valuation.
func (s *PortfolioService) List(ctx context.Context, accountID string) ([]*PortfolioPosition, error) {
	holdings, err := s.store.ListHoldings(ctx, accountID)
	if err != nil {
		return nil, err
	}

	positions := make([]*PortfolioPosition, 0, len(holdings))
	for _, h := range holdings {
		marketPrice, err := s.store.InstrumentPriceBySymbol(ctx, h.Symbol)
		if errors.Is(err, domain.ErrInstrumentNotFound) {
			marketPrice = h.AverageBuyPrice
		} else if err != nil {
			return nil, err
		}

		unrealized := (marketPrice - h.AverageBuyPrice) * h.Quantity
		unrealizedPct := 0.0
		if cost := h.AverageBuyPrice * h.Quantity; cost > 0 {
			unrealizedPct = float64(unrealized) / float64(cost) * 100
		}

		positions = append(positions, &PortfolioPosition{
			Symbol:               h.Symbol,
			Quantity:             h.Quantity,
			AverageBuyPrice:      h.AverageBuyPrice,
			CurrentMarketPrice:   marketPrice,
			CurrentValue:         h.Quantity * marketPrice,
			RealizedPnL:          h.RealizedPnL,
			UnrealizedPnL:        unrealized,
			UnrealizedPnLPercent: unrealizedPct,
			TotalPnL:             h.RealizedPnL + unrealized,
		})
	}
	return positions, nil
}
