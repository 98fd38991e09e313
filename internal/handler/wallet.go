package handler

import (
	"net/http"
	"time"

	"tradesim/internal/domain"
	"tradesim/internal/service"
)

// WalletHandler serves cash balance snapshots.
type WalletHandler struct {
	svc *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc *service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// walletResponse is the JSON view of a wallet. Monetary fields are rupees.
type walletResponse struct {
	AvailableBalance float64   `json:"availableBalance"`
	TotalInvested    float64   `json:"totalInvested"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// GetBalance handles GET /wallet.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.svc.GetBalance(r.Context(), accountID(r))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, walletResponse{
		AvailableBalance: domain.PaiseToRupees(wallet.AvailableBalance),
		TotalInvested:    domain.PaiseToRupees(wallet.TotalInvested),
		UpdatedAt:        wallet.UpdatedAt,
	})
}
