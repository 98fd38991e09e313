// Package engine implements the order execution engine: price resolution,
// fill simulation, and atomic application of order, trade, holding, and
// wallet mutations to the ledger store.
package engine

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradesim/internal/broker"
	"tradesim/internal/domain"
	"tradesim/internal/store"
)

// PriceOracle resolves current reference prices. Failures are expected and
// recovered: the engine falls back to the instrument's stored price.
type PriceOracle interface {
	GetQuote(ctx context.Context, symbol, exchange string) (*domain.Quote, error)
}

// PlaceOrderRequest is the validated input for order placement. LimitPrice
// is in paise and required iff Style is LIMIT.
type PlaceOrderRequest struct {
	AccountID  string
	Symbol     string
	Exchange   string
	Side       domain.OrderSide
	Style      domain.OrderStyle
	Quantity   int64
	LimitPrice int64
}

// Engine accepts orders, executes them against the fill policy, and keeps
// the four ledgers (orders, trades, holdings, wallet) consistent.
type Engine struct {
	store  *store.Store
	oracle PriceOracle
	broker broker.Broker
	policy FillPolicy
	locks  *accountLocks
	depth  *DepthManager
	logger zerolog.Logger
}

// New creates an Engine with the given collaborators.
func New(st *store.Store, oracle PriceOracle, brk broker.Broker, policy FillPolicy, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  st,
		oracle: oracle,
		broker: brk,
		policy: policy,
		locks:  newAccountLocks(),
		depth:  NewDepthManager(),
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

// Depth exposes the in-memory order book projection.
func (e *Engine) Depth() *DepthManager {
	return e.depth
}

// RestoreDepth rebuilds the depth view from open limit orders in the store.
// Called once at startup.
func (e *Engine) RestoreDepth(ctx context.Context) error {
	orders, err := e.store.OpenLimitOrders(ctx)
	if err != nil {
		return err
	}
	e.depth.Rebuild(orders)
	e.logger.Info().Int("orders", len(orders)).Msg("Depth view restored")
	return nil
}

// PlaceOrder runs the full execution flow:
//
//  1. Resolve the execution price (oracle for market orders, submitted price
//     for limit orders). The oracle call happens before the account lock so
//     a slow quote never blocks other orders for the account.
//  2. Under the per-account lock, pre-check the buy notional against the
//     wallet, determine the fill via the policy, and apply order, trade,
//     holding, and wallet mutations in one transaction.
//  3. Mirror the order to the external broker, best-effort.
//
// Two concurrent buys for the same account can never both pass the balance
// check against money only one of them can spend: the lock serializes the
// check-then-debit sequence per account.
func (e *Engine) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error) {
	instrument, err := e.store.GetInstrument(ctx, req.Symbol, req.Exchange)
	if err != nil {
		return nil, err
	}

	executionPrice := req.LimitPrice
	if req.Style == domain.OrderStyleMarket {
		executionPrice = e.resolveMarketPrice(ctx, instrument)
	}

	// The full notional must stay representable; every later product is
	// bounded by quantity × executionPrice.
	if executionPrice > 0 && req.Quantity > math.MaxInt64/executionPrice {
		return nil, &domain.ValidationError{Message: "Order value is too large"}
	}

	lock := e.locks.get(req.AccountID)
	lock.Lock()
	defer lock.Unlock()

	wallet, err := e.store.EnsureWallet(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	// Buys reserve the full order notional up front, not just the portion
	// that ends up filling.
	if req.Side == domain.OrderSideBuy {
		required := req.Quantity * executionPrice
		if wallet.AvailableBalance < required {
			return nil, &domain.InsufficientBalanceError{
				Required:  required,
				Available: wallet.AvailableBalance,
			}
		}
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:                uuid.New().String(),
		AccountID:         req.AccountID,
		Symbol:            req.Symbol,
		Exchange:          req.Exchange,
		Side:              req.Side,
		Style:             req.Style,
		Quantity:          req.Quantity,
		LimitPrice:        req.LimitPrice,
		Status:            domain.OrderStatusNew,
		RemainingQuantity: req.Quantity,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	fillQty := e.policy.FillQuantity(req.Style, req.Quantity)

	err = e.store.WithTx(ctx, func(tx *sql.Tx) error {
		if err := e.store.InsertOrderTx(ctx, tx, order); err != nil {
			return err
		}
		if fillQty > 0 {
			if err := e.applyFill(ctx, tx, order, fillQty, executionPrice, now); err != nil {
				return err
			}
		} else {
			order.Status = domain.OrderStatusPlaced
			order.UpdatedAt = now
		}
		return e.store.FinalizeOrderTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	e.depth.Track(order)

	e.logger.Info().
		Str("order_id", order.ID).
		Str("account_id", order.AccountID).
		Str("symbol", order.Symbol).
		Str("side", string(order.Side)).
		Str("style", string(order.Style)).
		Int64("quantity", order.Quantity).
		Int64("executed_quantity", order.ExecutedQuantity).
		Str("status", string(order.Status)).
		Msg("Order placed")

	e.mirrorOrder(ctx, order)

	return order, nil
}

// resolveMarketPrice asks the oracle for a live price and persists it to the
// instrument record on success. On oracle failure the stored last traded
// price serves as the execution price. Price discovery is independent of
// trade success: the refreshed price sticks even if the order later fails.
func (e *Engine) resolveMarketPrice(ctx context.Context, instrument *domain.Instrument) int64 {
	quote, err := e.oracle.GetQuote(ctx, instrument.Symbol, instrument.Exchange)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("symbol", instrument.Symbol).
			Int64("cached_price", instrument.LastTradedPrice).
			Msg("Live quote unavailable, using cached price")
		return instrument.LastTradedPrice
	}

	if err := e.store.UpdateInstrumentPrice(ctx, instrument.Symbol, instrument.Exchange, quote.LastTradedPrice); err != nil {
		e.logger.Error().
			Err(err).
			Str("symbol", instrument.Symbol).
			Msg("Failed to persist refreshed price")
	}
	return quote.LastTradedPrice
}

// applyFill records a fill inside tx: trade row, holding update, and wallet
// movement for the filled notional.
func (e *Engine) applyFill(ctx context.Context, tx *sql.Tx, order *domain.Order, fillQty, price int64, now time.Time) error {
	order.ExecutedQuantity = fillQty
	order.RemainingQuantity = order.Quantity - fillQty
	order.ExecutedPrice = price
	order.Status = domain.StatusForFill(order.ExecutedQuantity, order.RemainingQuantity)
	order.UpdatedAt = now

	trade := &domain.Trade{
		ID:         uuid.New().String(),
		AccountID:  order.AccountID,
		OrderID:    order.ID,
		Symbol:     order.Symbol,
		Exchange:   order.Exchange,
		Side:       order.Side,
		Quantity:   fillQty,
		Price:      price,
		ExecutedAt: now,
	}
	if err := e.store.InsertTradeTx(ctx, tx, trade); err != nil {
		return err
	}

	if err := e.updateHolding(ctx, tx, order, fillQty, price, now); err != nil {
		return err
	}

	notional := fillQty * price
	if order.Side == domain.OrderSideBuy {
		return e.store.DebitWalletTx(ctx, tx, order.AccountID, notional)
	}
	return e.store.CreditWalletTx(ctx, tx, order.AccountID, notional)
}

// updateHolding folds the fill into the account's position. A sell with no
// existing position leaves the holdings ledger untouched; the quantity floor
// means nothing can go short.
func (e *Engine) updateHolding(ctx context.Context, tx *sql.Tx, order *domain.Order, fillQty, price int64, now time.Time) error {
	holding, err := e.store.GetHoldingTx(ctx, tx, order.AccountID, order.Symbol)
	if err != nil {
		return err
	}

	if holding == nil {
		if order.Side == domain.OrderSideSell {
			return nil
		}
		holding = &domain.Holding{AccountID: order.AccountID, Symbol: order.Symbol}
	}

	if order.Side == domain.OrderSideBuy {
		holding.ApplyBuy(fillQty, price)
	} else {
		holding.ApplySell(fillQty, price)
	}
	holding.UpdatedAt = now

	return e.store.UpsertHoldingTx(ctx, tx, holding)
}

// mirrorOrder forwards the order to the external broker. Failures are
// logged and swallowed: the local simulation is the system of record.
func (e *Engine) mirrorOrder(ctx context.Context, order *domain.Order) {
	result, err := e.broker.MirrorOrder(ctx, order)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("broker", e.broker.Name()).
			Str("order_id", order.ID).
			Msg("Broker mirror failed, using local simulation")
		return
	}
	e.logger.Debug().
		Str("broker", e.broker.Name()).
		Str("order_id", order.ID).
		Str("broker_order_id", result.OrderID).
		Msg("Order mirrored to broker")
}
