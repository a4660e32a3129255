package handlers

import (
	"net/http"

	"github.com/Mainginick/market-speculation-hub/internal/models"
)

type MarketResponse struct {
	Quotes []models.MarketQuote `json:"quotes"`
}

// GetMarket отдаёт текущий снимок рынка. Его пишет фоновый рефрешер;
// если планировщик выключен, сервис делает разовый fetch по запросу
func (h *Handlers) GetMarket(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.MarketService.GetSnapshot(r.Context())
	if err != nil {
		WriteError(w, "Не удалось получить данные рынка", http.StatusInternalServerError)
		return
	}

	if quotes == nil {
		quotes = []models.MarketQuote{}
	}

	WriteJSON(w, MarketResponse{Quotes: quotes}, http.StatusOK)
}
