package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/stats/service"
)

type StatsHandler struct {
	service service.StatsServiceInterface
}

func NewStatsHandler(s service.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{service: s}
}

func (h *StatsHandler) Register(r *mux.Router) {
	r.HandleFunc("/stats/most-ordered-items", h.MostOrderedItems).Methods(http.MethodGet)
	r.HandleFunc("/stats/total-revenue", h.TotalRevenueByDate).Methods(http.MethodGet)
	r.HandleFunc("/stats/total-revenue-by-menu-item", h.TotalRevenueByMenuItem).Methods(http.MethodGet)
	r.HandleFunc("/stats/average-session-revenue-by-date", h.AverageSessionRevenueByDate).Methods(http.MethodGet)
}

func (h *StatsHandler) MostOrderedItems(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.MostOrderedItems(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *StatsHandler) TotalRevenueByDate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.TotalRevenueByDate(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *StatsHandler) TotalRevenueByMenuItem(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.TotalRevenueByMenuItem(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *StatsHandler) AverageSessionRevenueByDate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.AverageSessionRevenueByDate(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
