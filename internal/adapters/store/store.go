// Package store defines the key-value store contract and its backends.
//
// The contract splits reads by failure mode: Get is a hard read whose
// backend failures surface as errors, while CacheGet and CacheSet absorb
// every failure internally. Callers rely on this split to tell "no data"
// apart from "backend down".
package store

import (
	"context"
	"time"
)

// Store is the key-value store used for interests data and the score cache.
// Implementations must be safe for concurrent use by in-flight requests.
type Store interface {
	// Get performs a hard read. It returns ErrNotFound when the key is
	// absent and a non-nil error when the backend is unreachable.
	Get(ctx context.Context, key string) (string, error)

	// CacheGet performs a soft read: any backend failure reads as a miss.
	CacheGet(ctx context.Context, key string) (string, bool)

	// CacheSet performs a soft write with a time-to-live. Failures are
	// logged inside the implementation and otherwise dropped.
	CacheSet(ctx context.Context, key, value string, ttl time.Duration)
}
