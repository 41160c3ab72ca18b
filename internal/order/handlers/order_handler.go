package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/order/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (h *OrderHandler) Register(r *mux.Router) {
	r.HandleFunc("/orders", h.PlaceOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}", h.GetOrderByID).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}/serve", h.MarkOrderServed).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}/served-status", h.CheckItemsServedStatus).Methods(http.MethodGet)
	r.HandleFunc("/orders/session/{sessionId:[0-9]+}", h.GetOrdersBySession).Methods(http.MethodGet)
	r.HandleFunc("/orders/session/{sessionId:[0-9]+}/served", h.GetServedItemsBySession).Methods(http.MethodGet)
	r.HandleFunc("/orders/session/{sessionId:[0-9]+}/unserved", h.GetUnservedItemsBySession).Methods(http.MethodGet)
	r.HandleFunc("/order-items/{id:[0-9]+}/serve", h.ServeOrderItem).Methods(http.MethodPost)
	r.HandleFunc("/kitchen/queue", h.GetKitchenQueue).Methods(http.MethodGet)
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "invalid JSON body")
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetOrderByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) MarkOrderServed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.service.MarkOrderServed(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) CheckItemsServedStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.service.CheckItemsServedStatus(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetOrdersBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathInt64(w, r, "sessionId")
	if !ok {
		return
	}

	resp, err := h.service.GetOrdersBySession(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetServedItemsBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathInt64(w, r, "sessionId")
	if !ok {
		return
	}

	resp, err := h.service.GetServedItemsBySession(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetUnservedItemsBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathInt64(w, r, "sessionId")
	if !ok {
		return
	}

	resp, err := h.service.GetUnservedItemsBySession(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) ServeOrderItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.service.ServeOrderItem(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetKitchenQueue(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetKitchenQueue(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		httpx.WriteBadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}
