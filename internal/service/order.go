package service

import (
	"context"
	"fmt"
	"regexp"

	"tradesim/internal/domain"
	"tradesim/internal/engine"
	"tradesim/internal/store"
)

var (
	symbolRegex   = regexp.MustCompile(`^[A-Z0-9&-]{1,20}$`)
	exchangeRegex = regexp.MustCompile(`^(NSE|BSE)$`)
)

// maxOrderQuantity bounds a single order so notionals stay far from int64
// overflow at any plausible price.
const maxOrderQuantity = 1_000_000

// PlaceOrderRequest represents the input for order submission. Price is in
// rupees; required for LIMIT orders, ignored for MARKET orders.
type PlaceOrderRequest struct {
	AccountID string
	Symbol    string
	Exchange  string
	Side      domain.OrderSide
	Style     domain.OrderStyle
	Quantity  int64
	Price     *float64
}

// OrderService validates order submissions and delegates execution to the
// engine. Reads go straight to the ledger store.
type OrderService struct {
	engine *engine.Engine
	store  *store.Store
}

// NewOrderService creates a new OrderService.
func NewOrderService(eng *engine.Engine, st *store.Store) *OrderService {
	return &OrderService{engine: eng, store: st}
}

// PlaceOrder validates the request and hands it to the execution engine.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	if req.Side != domain.OrderSideBuy && req.Side != domain.OrderSideSell {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("Unknown order type: %s. Must be one of: BUY, SELL", req.Side),
		}
	}
	if req.Style != domain.OrderStyleMarket && req.Style != domain.OrderStyleLimit {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("Unknown order style: %s. Must be one of: MARKET, LIMIT", req.Style),
		}
	}
	if !symbolRegex.MatchString(req.Symbol) {
		return nil, &domain.ValidationError{
			Message: "symbol must match ^[A-Z0-9&-]{1,20}$",
		}
	}
	if !exchangeRegex.MatchString(req.Exchange) {
		return nil, &domain.ValidationError{
			Message: "exchange must be 'NSE' or 'BSE'",
		}
	}
	if req.Quantity <= 0 {
		return nil, &domain.ValidationError{
			Message: "quantity must be a positive integer",
		}
	}
	if req.Quantity > maxOrderQuantity {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("quantity must not exceed %d", maxOrderQuantity),
		}
	}

	var limitPrice int64
	if req.Style == domain.OrderStyleLimit {
		if req.Price == nil || *req.Price <= 0 {
			return nil, &domain.ValidationError{
				Message: "Price is required for LIMIT orders",
			}
		}
		p, err := domain.RupeesToPaise(*req.Price)
		if err != nil {
			return nil, &domain.ValidationError{
				Message: "price must have at most 2 decimal places",
			}
		}
		limitPrice = p
	}

	return s.engine.PlaceOrder(ctx, engine.PlaceOrderRequest{
		AccountID:  req.AccountID,
		Symbol:     req.Symbol,
		Exchange:   req.Exchange,
		Side:       req.Side,
		Style:      req.Style,
		Quantity:   req.Quantity,
		LimitPrice: limitPrice,
	})
}

// GetOrder retrieves an order scoped to the owning account.
func (s *OrderService) GetOrder(ctx context.Context, accountID, orderID string) (*domain.Order, error) {
	return s.store.GetOrder(ctx, accountID, orderID)
}

// ListOrders returns all of the account's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, accountID string) ([]*domain.Order, error) {
	return s.store.ListOrders(ctx, accountID)
}
