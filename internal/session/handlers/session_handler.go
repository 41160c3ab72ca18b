package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"restaurant-orders/internal/domain"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/session/service"
)

type SessionHandler struct {
	service service.SessionServiceInterface
	tables  *domain.TableRegistry
	lg      *logger.Logger
}

func NewSessionHandler(s service.SessionServiceInterface, tables *domain.TableRegistry, lg *logger.Logger) *SessionHandler {
	return &SessionHandler{service: s, tables: tables, lg: lg}
}

func (h *SessionHandler) Register(r *mux.Router) {
	r.HandleFunc("/sessions/start", h.StartSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/end", h.EndSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/active", h.ListActiveSessions).Methods(http.MethodGet)
	r.HandleFunc("/sessions/table/{tableNumber}", h.FindActiveSessionByTable).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id:[0-9]+}", h.GetSessionByID).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id:[0-9]+}/items", h.GetItemSummary).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id:[0-9]+}/checkout", h.GetCheckoutSummary).Methods(http.MethodGet)
}

func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	tableNumber, ok := h.tableFromBody(w, r)
	if !ok {
		return
	}

	resp, err := h.service.StartSession(r.Context(), tableNumber)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	tableNumber, ok := h.tableFromBody(w, r)
	if !ok {
		return
	}

	resp, err := h.service.EndSession(r.Context(), tableNumber)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) ListActiveSessions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListActiveSessions(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) FindActiveSessionByTable(w http.ResponseWriter, r *http.Request) {
	tableNumber := mux.Vars(r)["tableNumber"]
	if !h.tables.Contains(tableNumber) {
		httpx.WriteBadRequest(w, "unknown table number")
		return
	}

	resp, err := h.service.FindActiveSessionByTable(r.Context(), tableNumber)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetSessionByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) GetItemSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetItemSummary(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) GetCheckoutSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetCheckoutSummary(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) tableFromBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req domain.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "invalid JSON body")
		return "", false
	}
	if req.TableNumber == "" {
		httpx.WriteBadRequest(w, "table_number is required")
		return "", false
	}
	if !h.tables.Contains(req.TableNumber) {
		httpx.WriteBadRequest(w, "unknown table number")
		return "", false
	}
	return req.TableNumber, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.WriteBadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
