// Package cache is an expiring key/value store for provider responses.
//
// The cache is an optimization only. A read after expiry is a miss, and a
// write always replaces the previous payload and expiry for its key.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL applies when Put receives a non-positive ttl.
const DefaultTTL = time.Hour

type Store interface {
	// Get returns the payload stored under key. ok is false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Pruner is implemented by stores that keep expired rows around until told
// to delete them.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Key joins a namespace with request parameters so that identical requests
// collide and distinct ones do not. String parts are normalized with
// NormalizeQuery.
//
//	Key("rawg:search", "Portal 2", 1, 20) == "rawg:search:portal 2:1:20"
func Key(namespace string, parts ...any) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range parts {
		b.WriteByte(':')
		switch v := p.(type) {
		case string:
			b.WriteString(NormalizeQuery(v))
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// NormalizeQuery lowercases q, trims it and collapses internal whitespace.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func effectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
