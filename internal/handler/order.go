package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tradesim/internal/domain"
	"tradesim/internal/service"
)

// OrderHandler handles order submission and retrieval.
type OrderHandler struct {
	svc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// placeOrderRequest is the JSON body for POST /orders. Price is in rupees;
// required for LIMIT orders, ignored for MARKET orders.
type placeOrderRequest struct {
	Symbol   string   `json:"symbol"`
	Exchange string   `json:"exchange"`
	Side     string   `json:"orderType"`
	Style    string   `json:"orderStyle"`
	Quantity int64    `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// orderResponse is the JSON view of an order. Monetary fields are rupees.
type orderResponse struct {
	OrderID           string    `json:"orderId"`
	Symbol            string    `json:"symbol"`
	Exchange          string    `json:"exchange"`
	Side              string    `json:"orderType"`
	Style             string    `json:"orderStyle"`
	Quantity          int64     `json:"quantity"`
	LimitPrice        float64   `json:"limitPrice,omitempty"`
	Status            string    `json:"status"`
	ExecutedPrice     float64   `json:"executedPrice"`
	ExecutedQuantity  int64     `json:"executedQuantity"`
	RemainingQuantity int64     `json:"remainingQuantity"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		OrderID:           o.ID,
		Symbol:            o.Symbol,
		Exchange:          o.Exchange,
		Side:              string(o.Side),
		Style:             string(o.Style),
		Quantity:          o.Quantity,
		LimitPrice:        domain.PaiseToRupees(o.LimitPrice),
		Status:            string(o.Status),
		ExecutedPrice:     domain.PaiseToRupees(o.ExecutedPrice),
		ExecutedQuantity:  o.ExecutedQuantity,
		RemainingQuantity: o.RemainingQuantity,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// PlaceOrder handles POST /orders.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.svc.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		AccountID: accountID(r),
		Symbol:    req.Symbol,
		Exchange:  req.Exchange,
		Side:      domain.OrderSide(req.Side),
		Style:     domain.OrderStyle(req.Style),
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteMessage(w, http.StatusCreated, placeOrderMessage(order.Status), toOrderResponse(order))
}

func placeOrderMessage(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusExecuted:
		return "Order executed successfully"
	case domain.OrderStatusPartiallyExecuted:
		return "Order partially executed"
	default:
		return "Order placed successfully"
	}
}

// GetOrder handles GET /orders/{orderId}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.svc.GetOrder(r.Context(), accountID(r), orderID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListOrders handles GET /orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context(), accountID(r))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	WriteJSON(w, http.StatusOK, resp)
}
