package handler

import (
	"net/http"
	"time"

	"tradesim/internal/domain"
	"tradesim/internal/service"
)

// TradeHandler serves the immutable trade log.
type TradeHandler struct {
	svc *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(svc *service.TradeService) *TradeHandler {
	return &TradeHandler{svc: svc}
}

// tradeResponse is the JSON view of a trade. Price is rupees.
type tradeResponse struct {
	TradeID    string    `json:"tradeId"`
	OrderID    string    `json:"orderId"`
	Symbol     string    `json:"symbol"`
	Exchange   string    `json:"exchange"`
	Side       string    `json:"side"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	ExecutedAt time.Time `json:"executedAt"`
}

// List handles GET /trades with optional symbol, side, fromDate, and toDate
// query filters.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	trades, err := h.svc.List(r.Context(), accountID(r), service.TradeFilterRequest{
		Symbol:   q.Get("symbol"),
		Side:     q.Get("side"),
		FromDate: q.Get("fromDate"),
		ToDate:   q.Get("toDate"),
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		resp = append(resp, tradeResponse{
			TradeID:    t.ID,
			OrderID:    t.OrderID,
			Symbol:     t.Symbol,
			Exchange:   t.Exchange,
			Side:       string(t.Side),
			Quantity:   t.Quantity,
			Price:      domain.PaiseToRupees(t.Price),
			ExecutedAt: t.ExecutedAt,
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}
