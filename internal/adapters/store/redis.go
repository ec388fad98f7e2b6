package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/valeko/scoreline/pkg/logger"
	"github.com/valeko/scoreline/pkg/metrics"
)

// Default client tuning. Retries use the client's built-in exponential
// backoff, bounded by maxRetries; the core never retries on top of this.
const (
	defaultDialTimeout  = 10 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
	defaultMaxRetries   = 3
	defaultMinBackoff   = 8 * time.Millisecond
	defaultMaxBackoff   = 512 * time.Millisecond
)

// Redis implements Store on a go-redis client. The client pools connections
// and is shared by every in-flight request.
type Redis struct {
	client *redis.Client
	log    logger.Logger
}

// RedisOption applies a configuration option to the Redis store.
type RedisOption func(*redisSettings)

type redisSettings struct {
	password     string
	db           int
	dialTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxRetries   int
	log          logger.Logger
}

// WithPassword sets the redis AUTH password.
func WithPassword(password string) RedisOption {
	return func(s *redisSettings) { s.password = password }
}

// WithDB selects the redis logical database.
func WithDB(db int) RedisOption {
	return func(s *redisSettings) { s.db = db }
}

// WithDialTimeout bounds connection establishment.
func WithDialTimeout(d time.Duration) RedisOption {
	return func(s *redisSettings) {
		if d > 0 {
			s.dialTimeout = d
		}
	}
}

// WithMaxRetries bounds the client's retry attempts on transient errors.
func WithMaxRetries(n int) RedisOption {
	return func(s *redisSettings) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithLogger sets the logger used for absorbed cache failures.
func WithLogger(log logger.Logger) RedisOption {
	return func(s *redisSettings) {
		if log != nil {
			s.log = log
		}
	}
}

// NewRedis creates a redis-backed store for the given address.
func NewRedis(addr string, opts ...RedisOption) *Redis {
	s := redisSettings{
		dialTimeout:  defaultDialTimeout,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		maxRetries:   defaultMaxRetries,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        s.password,
		DB:              s.db,
		DialTimeout:     s.dialTimeout,
		ReadTimeout:     s.readTimeout,
		WriteTimeout:    s.writeTimeout,
		MaxRetries:      s.maxRetries,
		MinRetryBackoff: defaultMinBackoff,
		MaxRetryBackoff: defaultMaxBackoff,
	})
	return &Redis{client: client, log: s.log.Named("redis")}
}

// Get performs a hard read: connectivity and timeout failures surface as
// ErrUnavailable so callers can distinguish them from a missing key.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreFailure("get")
		return "", fmt.Errorf("%w: get %q: %s", ErrUnavailable, key, err)
	}
	return val, nil
}

// CacheGet never fails: a missing key and an unreachable backend both read
// as a miss.
func (r *Redis) CacheGet(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		metrics.RecordStoreFailure("cache_get")
		r.log.Warn(ctx, "cache read failed", logger.String("key", key), logger.Error(err))
		return "", false
	}
	return val, true
}

// CacheSet never fails: write errors are logged and dropped.
func (r *Redis) CacheSet(ctx context.Context, key, value string, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.RecordStoreFailure("cache_set")
		r.log.Warn(ctx, "cache write failed", logger.String("key", key), logger.Error(err))
	}
}

// Ping verifies backend connectivity, for use at bootstrap and in health
// checks.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %s", ErrUnavailable, err)
	}
	return nil
}

// Close releases the client's connection pool.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
