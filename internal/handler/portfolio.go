package handler

import (
	"net/http"

	"tradesim/internal/domain"
	"tradesim/internal/service"
)

// PortfolioHandler serves market-valued positions.
type PortfolioHandler struct {
	svc *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// positionResponse is the JSON view of one position. Monetary fields are
// rupees.
type positionResponse struct {
	Symbol               string  `json:"symbol"`
	Quantity             int64   `json:"quantity"`
	AverageBuyPrice      float64 `json:"averageBuyPrice"`
	CurrentMarketPrice   float64 `json:"currentMarketPrice"`
	CurrentValue         float64 `json:"currentValue"`
	RealizedPnL          float64 `json:"realizedPnl"`
	UnrealizedPnL        float64 `json:"unrealizedPnl"`
	UnrealizedPnLPercent float64 `json:"unrealizedPnlPercent"`
	TotalPnL             float64 `json:"totalPnl"`
}

// portfolioResponse aggregates positions with portfolio-level totals.
type portfolioResponse struct {
	Positions     []positionResponse `json:"positions"`
	TotalValue    float64            `json:"totalValue"`
	TotalPnL      float64            `json:"totalPnl"`
	PositionCount int                `json:"positionCount"`
}

// List handles GET /portfolio.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.svc.List(r.Context(), accountID(r))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := portfolioResponse{
		Positions:     make([]positionResponse, 0, len(positions)),
		PositionCount: len(positions),
	}
	var totalValue, totalPnL int64
	for _, p := range positions {
		totalValue += p.CurrentValue
		totalPnL += p.TotalPnL
		resp.Positions = append(resp.Positions, positionResponse{
			Symbol:               p.Symbol,
			Quantity:             p.Quantity,
			AverageBuyPrice:      domain.PaiseToRupees(p.AverageBuyPrice),
			CurrentMarketPrice:   domain.PaiseToRupees(p.CurrentMarketPrice),
			CurrentValue:         domain.PaiseToRupees(p.CurrentValue),
			RealizedPnL:          domain.PaiseToRupees(p.RealizedPnL),
			UnrealizedPnL:        domain.PaiseToRupees(p.UnrealizedPnL),
			UnrealizedPnLPercent: p.UnrealizedPnLPercent,
			TotalPnL:             domain.PaiseToRupees(p.TotalPnL),
		})
	}
	resp.TotalValue = domain.PaiseToRupees(totalValue)
	resp.TotalPnL = domain.PaiseToRupees(totalPnL)

	WriteJSON(w, http.StatusOK, resp)
}
