package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gamelib/internal/catalog"
	"gamelib/internal/config"
	"gamelib/internal/httpx"
	"gamelib/internal/ingest"
	"gamelib/internal/library"
	"gamelib/internal/usecase"
)

const (
	requestTimeout  = 30 * time.Second
	maxRequestBytes = 1 << 20
)

type handlers struct {
	catalog *catalog.HTTPHandler
	library *library.HTTPHandler
	ingest  *ingest.HTTPHandler
	usecase *usecase.HTTPHandler
}

// newRouter mounts every route. ready is probed by /readyz.
func newRouter(ctx context.Context, cfg config.Config, logger *zap.Logger, h handlers, ready func(context.Context) error) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())

	auth := httpx.AuthMiddleware(cfg.JWTSecret)
	timeout := httpx.TimeoutMiddleware(requestTimeout)
	protected := func(fn http.HandlerFunc) http.Handler { return auth(timeout(fn)) }

	router.Handle("GET /v1/games/search", protected(h.usecase.SearchGames))
	router.Handle("GET /v1/catalog/search", protected(h.catalog.Search))
	router.Handle("POST /v1/games/resolve", protected(h.catalog.Resolve))
	router.Handle("GET /v1/games/{id}", protected(h.catalog.Get))

	router.Handle("GET /v1/library", protected(h.library.List))
	router.Handle("POST /v1/library", protected(h.library.Add))
	router.Handle("POST /v1/library/rawg", protected(h.usecase.AddByRAWGID))
	router.Handle("GET /v1/library/stats", protected(h.library.Stats))
	router.Handle("GET /v1/library/dashboard", protected(h.library.Dashboard))
	router.Handle("GET /v1/library/{gameID}", protected(h.library.Get))
	router.Handle("PUT /v1/library/{gameID}", protected(h.library.Update))
	router.Handle("DELETE /v1/library/{gameID}", protected(h.library.Remove))

	// Imports run for as long as the Steam library takes; only the client
	// disconnecting cancels them.
	router.Handle("POST /v1/import/steam", auth(http.HandlerFunc(h.ingest.ImportSteam)))
	router.Handle("GET /v1/import/runs", protected(h.ingest.Runs))
	router.Handle("GET /v1/steam/profile/{handle}", protected(h.ingest.SteamProfile))

	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = router
	handler = limiter.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(maxRequestBytes)(handler)
	handler = httpx.SecurityHeadersMiddleware(false)(handler)
	handler = httpx.CORSMiddleware(cfg.CORSAllowedOrigins)(handler)
	handler = httpx.RecoveryMiddleware(logger)(handler)
	handler = httpx.AccessLogMiddleware(logger)(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler
}
