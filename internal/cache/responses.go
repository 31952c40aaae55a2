package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"gamelib/internal/logging"
	"gamelib/internal/metrics"
)

// Responses memoizes JSON-encodable responses on top of a Store. Read
// failures count as misses and write failures are logged and dropped; neither
// ever reaches the caller.
type Responses struct {
	store  Store
	logger *zap.Logger
}

func NewResponses(store Store, logger *zap.Logger) *Responses {
	return &Responses{
		store:  store,
		logger: logging.OrNop(logger).Named("cache"),
	}
}

// Load decodes the payload cached under key into dst and reports whether it
// was a usable hit.
func (r *Responses) Load(ctx context.Context, namespace, key string, dst any) bool {
	payload, ok, err := r.store.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(namespace, "error").Inc()
		r.logger.Warn("cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues(namespace, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		metrics.CacheLookups.WithLabelValues(namespace, "error").Inc()
		r.logger.Warn("cached payload undecodable, treating as miss", zap.String("key", key), zap.Error(err))
		return false
	}
	metrics.CacheLookups.WithLabelValues(namespace, "hit").Inc()
	return true
}

// Save writes v through to the store.
func (r *Responses) Save(ctx context.Context, namespace, key string, v any, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err == nil {
		err = r.store.Put(ctx, key, payload, ttl)
	}
	if err != nil {
		metrics.CacheWriteErrors.WithLabelValues(namespace).Inc()
		r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
