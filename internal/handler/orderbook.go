package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tradesim/internal/domain"
	"tradesim/internal/engine"
	"tradesim/internal/service"
)

// OrderBookHandler serves depth snapshots.
type OrderBookHandler struct {
	svc *service.OrderBookService
}

// NewOrderBookHandler creates a new OrderBookHandler.
func NewOrderBookHandler(svc *service.OrderBookService) *OrderBookHandler {
	return &OrderBookHandler{svc: svc}
}

// bookEntryResponse is one resting order in the depth view. Price is rupees.
type bookEntryResponse struct {
	OrderID           string  `json:"orderId"`
	Price             float64 `json:"price"`
	ExecutedQuantity  int64   `json:"executedQuantity"`
	RemainingQuantity int64   `json:"remainingQuantity"`
	Status            string  `json:"status"`
}

// depthResponse is the JSON view of the top of the book for one symbol.
type depthResponse struct {
	Symbol     string              `json:"symbol"`
	Bids       []bookEntryResponse `json:"bids"`
	Asks       []bookEntryResponse `json:"asks"`
	SnapshotAt time.Time           `json:"snapshotAt"`
}

func toBookEntries(entries []engine.BookEntry) []bookEntryResponse {
	out := make([]bookEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, bookEntryResponse{
			OrderID:           e.OrderID,
			Price:             domain.PaiseToRupees(e.Price),
			ExecutedQuantity:  e.ExecutedQuantity,
			RemainingQuantity: e.RemainingQuantity,
			Status:            string(e.Status),
		})
	}
	return out
}

// GetDepth handles GET /orderbook/{symbol}. Unknown symbols return empty
// sides rather than an error.
func (h *OrderBookHandler) GetDepth(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	snap := h.svc.GetDepth(symbol)
	WriteJSON(w, http.StatusOK, depthResponse{
		Symbol:     snap.Symbol,
		Bids:       toBookEntries(snap.Bids),
		Asks:       toBookEntries(snap.Asks),
		SnapshotAt: snap.SnapshotAt,
	})
}
