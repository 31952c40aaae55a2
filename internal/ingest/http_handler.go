package ingest

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

type importRequest struct {
	SteamHandle        string `json:"steam_handle"`
	Limit              int    `json:"limit"`
	MinPlaytimeMinutes int    `json:"min_playtime_minutes"`
	Enrich             *bool  `json:"enrich"`
}

// ImportSteam handles POST /v1/import/steam
func (h *HTTPHandler) ImportSteam(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req importRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	opts := DefaultOptions()
	opts.Limit = req.Limit
	opts.MinPlaytimeMinutes = req.MinPlaytimeMinutes
	if req.Enrich != nil {
		opts.Enrich = *req.Enrich
	}

	report, err := h.svc.Run(r.Context(), userID, req.SteamHandle, opts)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, report, nil)
}

// SteamProfile handles GET /v1/steam/profile/{handle}
func (h *HTTPHandler) SteamProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile(r.Context(), r.PathValue("handle"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, profile, nil)
}

// Runs handles GET /v1/import/runs
func (h *HTTPHandler) Runs(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.svc.Runs(r.Context(), userID, limit)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, runs, nil)
}
