package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/menu/service"
)

type MenuHandler struct {
	service service.MenuServiceInterface
}

func NewMenuHandler(s service.MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

func (h *MenuHandler) Register(r *mux.Router) {
	r.HandleFunc("/menu", h.List).Methods(http.MethodGet)
	r.HandleFunc("/menu/available", h.ListAvailable).Methods(http.MethodGet)
	r.HandleFunc("/menu/{id:[0-9]+}", h.GetByID).Methods(http.MethodGet)
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *MenuHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListAvailable(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *MenuHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.WriteBadRequest(w, "invalid id")
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
