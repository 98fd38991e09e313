package handler

import (
	"net/http"

	"tradesim/internal/domain"
	"tradesim/internal/service"
)

// InstrumentHandler serves the tradable universe.
type InstrumentHandler struct {
	svc *service.InstrumentService
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(svc *service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{svc: svc}
}

// instrumentResponse is the JSON view of an instrument with market data.
// Monetary fields are rupees. Live is false when the stored price was used.
type instrumentResponse struct {
	Symbol          string  `json:"symbol"`
	Exchange        string  `json:"exchange"`
	InstrumentType  string  `json:"instrumentType"`
	LastTradedPrice float64 `json:"lastTradedPrice"`
	Live            bool    `json:"live"`
	Change          float64 `json:"change"`
	ChangePercent   float64 `json:"changePercent"`
	Volume          int64   `json:"volume"`
	High            float64 `json:"high"`
	Low             float64 `json:"low"`
	Open            float64 `json:"open"`
}

// List handles GET /instruments.
func (h *InstrumentHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.svc.List(r.Context())
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := make([]instrumentResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, instrumentResponse{
			Symbol:          q.Instrument.Symbol,
			Exchange:        q.Instrument.Exchange,
			InstrumentType:  q.Instrument.InstrumentType,
			LastTradedPrice: domain.PaiseToRupees(q.Instrument.LastTradedPrice),
			Live:            q.Live,
			Change:          domain.PaiseToRupees(q.Change),
			ChangePercent:   q.ChangePercent,
			Volume:          q.Volume,
			High:            domain.PaiseToRupees(q.High),
			Low:             domain.PaiseToRupees(q.Low),
			Open:            domain.PaiseToRupees(q.Open),
		})
	}
	WriteJSON(w, http.StatusOK, resp)
}
