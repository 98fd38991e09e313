package service

import (
	"context"
	"fmt"
	"time"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

// TradeFilterRequest carries raw query filters for the trade log. Dates
// accept YYYY-MM-DD or RFC3339.
type TradeFilterRequest struct {
	Symbol   string
	Side     string
	FromDate string
	ToDate   string
}

// TradeService serves the immutable trade log with optional filtering.
type TradeService struct {
	store *store.Store
}

// NewTradeService creates a new TradeService.
func NewTradeService(st *store.Store) *TradeService {
	return &TradeService{store: st}
}

// List returns the account's trades matching the filter, newest first.
func (s *TradeService) List(ctx context.Context, accountID string, req TradeFilterRequest) ([]*domain.Trade, error) {
	filter := store.TradeFilter{Symbol: req.Symbol}

	if req.Side != "" {
		side := domain.OrderSide(req.Side)
		if side != domain.OrderSideBuy && side != domain.OrderSideSell {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("Invalid side filter: '%s'. Must be one of: BUY, SELL", req.Side),
			}
		}
		filter.Side = side
	}

	if req.FromDate != "" {
		from, err := parseDate(req.FromDate)
		if err != nil {
			return nil, &domain.ValidationError{
				Message: "fromDate must be YYYY-MM-DD or RFC3339",
			}
		}
		filter.From = from
	}
	if req.ToDate != "" {
		to, err := parseDate(req.ToDate)
		if err != nil {
			return nil, &domain.ValidationError{
				Message: "toDate must be YYYY-MM-DD or RFC3339",
			}
		}
		filter.To = to
	}

	return s.store.ListTrades(ctx, accountID, filter)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
