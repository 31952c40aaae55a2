package catalog

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"gamelib/internal/httpx"
	"gamelib/internal/logging"
)

type HTTPHandler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHTTPHandler(svc *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: logging.OrNop(logger)}
}

// Search handles GET /v1/catalog/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > maxSearchLimit {
		pageSize = defaultSearchLimit
	}

	games, total, err := h.svc.Search(r.Context(), SearchQuery{
		Q:      query.Get("q"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	httpx.JSONSuccess(w, r, games, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// Get handles GET /v1/games/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Game ID is required", nil)
		return
	}

	game, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, game, nil)
}

type resolveRequest struct {
	RAWGID     string `json:"rawg_id"`
	SteamAppID string `json:"steam_app_id"`
	Title      string `json:"title"`
}

// Resolve handles POST /v1/games/resolve
func (h *HTTPHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	game, err := h.svc.Resolve(r.Context(), Candidate{
		RAWGID:     req.RAWGID,
		SteamAppID: req.SteamAppID,
		Title:      req.Title,
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, game, nil)
}
