package usecase

import (
	"net/http"

	"go.uber.org/zap"

	"gamelib/internal/httpx"
	"gamelib/internal/library"
	"gamelib/internal/logging"
)

type HTTPHandler struct {
	library *LibraryUsecase
	search  *SearchUsecase
	logger  *zap.Logger
}

func NewHTTPHandler(lib *LibraryUsecase, search *SearchUsecase, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{library: lib, search: search, logger: logging.OrNop(logger)}
}

// SearchGames handles GET /v1/games/search?q=&source=
func (h *HTTPHandler) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	res, err := h.search.Games(r.Context(), query.Get("q"), query.Get("source"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONSuccess(w, r, res, nil)
}

type addByRAWGRequest struct {
	RAWGID string `json:"rawg_id"`
	library.AddInput
}

// AddByRAWGID handles POST /v1/library/rawg
func (h *HTTPHandler) AddByRAWGID(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req addByRAWGRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	entry, err := h.library.AddByRAWGID(r.Context(), userID, req.RAWGID, req.AddInput)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSONCreated(w, r, entry)
}
