package library

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"gamelib/internal/httpx"
	"gamelib/internal/logging"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logging.OrNop(logger)}
}

func (h *HTTPHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return "", false
	}
	return userID, true
}

// List handles GET /v1/library
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > maxListLimit {
		pageSize = defaultListLimit
	}

	entries, total, err := h.service.List(r.Context(), userID, ListQuery{
		Status: Status(query.Get("status")),
		Sort:   query.Get("sort"),
		Order:  query.Get("order"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	httpx.JSONSuccess(w, r, entries, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

type addRequest struct {
	GameID string `json:"game_id"`
	AddInput
}

// Add handles POST /v1/library
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req addRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if req.GameID == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "game_id is required",
			[]httpx.ErrorDetail{{Field: "game_id", Message: "is required"}})
		return
	}

	entry, err := h.service.Add(r.Context(), userID, req.GameID, req.AddInput)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONCreated(w, r, entry)
}

// Get handles GET /v1/library/{gameID}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	entry, err := h.service.Get(r.Context(), userID, r.PathValue("gameID"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, entry, nil)
}

// Update handles PUT /v1/library/{gameID}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req UpdateInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	entry, err := h.service.Update(r.Context(), userID, r.PathValue("gameID"), req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, entry, nil)
}

// Remove handles DELETE /v1/library/{gameID}
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.service.Remove(r.Context(), userID, r.PathValue("gameID")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONNoContent(w)
}

// Stats handles GET /v1/library/stats
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, stats, nil)
}

// Dashboard handles GET /v1/library/dashboard
func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	d, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, d, nil)
}
