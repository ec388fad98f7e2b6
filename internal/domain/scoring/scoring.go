// Package scoring implements the cache-aside score computation and the
// client interests lookup over the key-value store.
package scoring

import (
	"context"
	"crypto/md5" //nolint:gosec // cache key derivation, not security
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/valeko/scoreline/internal/adapters/store"
	"github.com/valeko/scoreline/internal/domain/model"
	"github.com/valeko/scoreline/pkg/logger"
	"github.com/valeko/scoreline/pkg/metrics"
)

// Key layout in the store.
const (
	scorePrefix     = "uid:"
	interestsPrefix = "i:"
	keyDateLayout   = "20060102"
)

// Score weights. Additive and independent; the maximum reachable score is 5.
const (
	phoneWeight    = 1.5
	emailWeight    = 1.5
	birthdayWeight = 1.5
	nameWeight     = 0.5
)

// DefaultCacheTTL is how long computed scores stay cached.
const DefaultCacheTTL = 3600 * time.Second

// CacheKey derives the deterministic cache key for a profile. Only first
// name, last name, phone and birthday participate, in that order, with unset
// components contributing an empty string: callers must not assume the
// cached score varies with email or gender.
func CacheKey(p model.Profile) string {
	birthday := ""
	if p.HasBirthday() {
		birthday = p.Birthday.Format(keyDateLayout)
	}
	sum := md5.Sum([]byte(p.FirstName + p.LastName + p.Phone + birthday)) //nolint:gosec // not security
	return scorePrefix + hex.EncodeToString(sum[:])
}

// Engine computes scores and reads interests against a Store.
type Engine struct {
	store store.Store
	ttl   time.Duration
	log   logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCacheTTL overrides the score cache time-to-live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		if ttl > 0 {
			e.ttl = ttl
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates a scoring engine over the given store.
func New(st store.Store, opts ...Option) *Engine {
	e := &Engine{
		store: st,
		ttl:   DefaultCacheTTL,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score returns the score for a profile, serving it from cache when a value
// is already there. A cached value is returned as-is without recomputation;
// a fresh value is computed from the profile weights and written back with
// the engine's TTL through a soft cache write.
func (e *Engine) Score(ctx context.Context, p model.Profile) (float64, error) {
	key := CacheKey(p)

	if raw, ok := e.store.CacheGet(ctx, key); ok {
		cached, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt cached score at %q: %w", key, err)
		}
		metrics.RecordCacheHit()
		e.log.Debug(ctx, "score served from cache", logger.String("key", key))
		return cached, nil
	}
	metrics.RecordCacheMiss()

	var score float64
	if p.Phone != "" {
		score += phoneWeight
	}
	if p.Email != "" {
		score += emailWeight
	}
	if p.HasBirthday() && p.HasGender() {
		score += birthdayWeight
	}
	if p.FirstName != "" && p.LastName != "" {
		score += nameWeight
	}

	e.store.CacheSet(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), e.ttl)
	metrics.RecordScoreComputed()
	return score, nil
}

// Interests returns the interest list for one client id via a hard read of
// "i:<id>". A missing key yields an empty list; a store failure propagates
// to the caller instead of being read as absence.
func (e *Engine) Interests(ctx context.Context, clientID string) ([]string, error) {
	raw, err := e.store.Get(ctx, interestsPrefix+clientID)
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("interests lookup for client %s: %w", clientID, err)
	}
	metrics.RecordInterestsLookup()
	if raw == "" {
		return []string{}, nil
	}

	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, fmt.Errorf("decode interests for client %s: %w", clientID, err)
	}
	return interests, nil
}
