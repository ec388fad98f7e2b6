// Package service implements the RPC dispatch core: envelope validation,
// authentication and routing to the two business operations.
package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/valeko/scoreline/internal/adapters/store"
	"github.com/valeko/scoreline/internal/domain/auth"
	"github.com/valeko/scoreline/internal/domain/request"
	"github.com/valeko/scoreline/internal/domain/rpc"
	"github.com/valeko/scoreline/internal/domain/scoring"
	"github.com/valeko/scoreline/internal/domain/validation"
	"github.com/valeko/scoreline/pkg/logger"
	"github.com/valeko/scoreline/pkg/metrics"
)

// adminScore is returned to admin callers of online_score without touching
// the store. An authorization-tier shortcut, not a cache hit.
const adminScore = 42

// Service holds the immutable schema registry, the authenticator and the
// scoring engine. One Service serves every request; all per-request state
// lives in schema instances.
type Service struct {
	store  store.Store
	engine *scoring.Engine
	auth   *auth.Authenticator
	log    logger.Logger

	methodSchema    *validation.Schema
	scoreSchema     *validation.Schema
	interestsSchema *validation.Schema

	now       func() time.Time
	salt      string
	adminSalt string
	cacheTTL  time.Duration

	startedAt time.Time

	stats struct {
		requests          atomic.Int64
		scoreCalls        atomic.Int64
		interestCalls     atomic.Int64
		authRejects       atomic.Int64
		validationRejects atomic.Int64
	}
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces the wall clock used for admin tokens and the birthday
// age cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSalt overrides the shared secret for regular tokens.
func WithSalt(salt string) Option {
	return func(s *Service) {
		if salt != "" {
			s.salt = salt
		}
	}
}

// WithAdminSalt overrides the admin secret.
func WithAdminSalt(salt string) Option {
	return func(s *Service) {
		if salt != "" {
			s.adminSalt = salt
		}
	}
}

// WithCacheTTL overrides the score cache time-to-live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// New constructs the service over the given store. The schema definitions
// are built here, once, and shared by every request.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		log:       logger.Nop(),
		now:       time.Now,
		salt:      auth.DefaultSalt,
		adminSalt: auth.DefaultAdminSalt,
		cacheTTL:  scoring.DefaultCacheTTL,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.auth = auth.New(
		auth.WithSalt(s.salt),
		auth.WithAdminSalt(s.adminSalt),
		auth.WithClock(s.now),
	)
	s.engine = scoring.New(st,
		scoring.WithCacheTTL(s.cacheTTL),
		scoring.WithLogger(s.log.Named("scoring")),
	)
	s.methodSchema = request.NewMethodSchema()
	s.scoreSchema = request.NewScoreArgsSchema(s.now)
	s.interestsSchema = request.NewInterestsArgsSchema()
	return s
}

// Handle processes one decoded envelope body and returns either the method
// result or an rpc.Error carrying the envelope code. Internal failures are
// logged in full here and leave only a generic 500 for the wire.
func (s *Service) Handle(ctx context.Context, body map[string]any) (result any, rerr *rpc.Error) {
	s.stats.requests.Add(1)
	method := "unknown"
	defer func() {
		code := rpc.StatusOK
		if rerr != nil {
			code = rerr.Code
		}
		metrics.RecordMethodCall(method, strconv.Itoa(code))
	}()

	inst := s.methodSchema.Validate(body)
	if !inst.Valid() {
		s.stats.validationRejects.Add(1)
		metrics.RecordValidationFailure(request.MethodSchemaName)
		return nil, rpc.NewError(rpc.StatusInvalidRequest, inst.Err().Error())
	}
	req := request.NewMethod(inst)
	method = req.Name()

	if !s.auth.Verify(req.Account(), req.Login(), req.Token()) {
		s.stats.authRejects.Add(1)
		metrics.RecordAuthFailure()
		s.log.Warn(ctx, "authentication rejected",
			logger.String("login", req.Login()),
			logger.String("request_id", logger.RequestID(ctx)),
		)
		return nil, rpc.NewError(rpc.StatusForbidden, "")
	}

	switch req.Name() {
	case rpc.MethodOnlineScore:
		return s.onlineScore(ctx, req)
	case rpc.MethodClientsInterests:
		return s.clientsInterests(ctx, req)
	}

	s.log.Warn(ctx, "unknown method requested",
		logger.String("method", req.Name()),
		logger.String("request_id", logger.RequestID(ctx)),
	)
	return nil, rpc.NewError(rpc.StatusNotFound, "")
}

func (s *Service) onlineScore(ctx context.Context, req request.Method) (any, *rpc.Error) {
	s.stats.scoreCalls.Add(1)

	args := s.scoreSchema.Validate(req.Arguments())
	s.log.Info(ctx, "online_score requested",
		logger.Any("has", args.PresentFields()),
		logger.Bool("admin", req.IsAdmin()),
		logger.String("request_id", logger.RequestID(ctx)),
	)
	if !args.Valid() {
		s.stats.validationRejects.Add(1)
		metrics.RecordValidationFailure(request.ScoreSchemaName)
		return nil, rpc.NewError(rpc.StatusInvalidRequest, args.Err().Error())
	}

	if req.IsAdmin() {
		return rpc.ScoreResult{Score: adminScore}, nil
	}

	score, err := s.engine.Score(ctx, request.ProfileOf(args))
	if err != nil {
		s.log.Error(ctx, "score computation failed",
			logger.Error(err),
			logger.String("request_id", logger.RequestID(ctx)),
		)
		return nil, rpc.NewError(rpc.StatusInternalError, "")
	}
	return rpc.ScoreResult{Score: score}, nil
}

func (s *Service) clientsInterests(ctx context.Context, req request.Method) (any, *rpc.Error) {
	s.stats.interestCalls.Add(1)

	args := s.interestsSchema.Validate(req.Arguments())
	if !args.Valid() {
		s.stats.validationRejects.Add(1)
		metrics.RecordValidationFailure(request.InterestsSchemaName)
		return nil, rpc.NewError(rpc.StatusInvalidRequest, args.Err().Error())
	}

	ids := request.ClientIDs(args)
	s.log.Info(ctx, "clients_interests requested",
		logger.Int("nclients", len(ids)),
		logger.String("request_id", logger.RequestID(ctx)),
	)

	result := make(rpc.InterestsResult, len(ids))
	for _, id := range ids {
		key := fmt.Sprint(id)
		interests, err := s.engine.Interests(ctx, key)
		if err != nil {
			// Hard store failures must not read as an empty interest list.
			s.log.Error(ctx, "interests lookup failed",
				logger.String("client_id", key),
				logger.Error(err),
				logger.String("request_id", logger.RequestID(ctx)),
			)
			return nil, rpc.NewError(rpc.StatusInternalError, "")
		}
		result[key] = interests
	}
	return result, nil
}

// GetStats returns a snapshot of service counters for the stats endpoint.
func (s *Service) GetStats() map[string]any {
	return map[string]any{
		"uptime_seconds":     int64(time.Since(s.startedAt).Seconds()),
		"requests":           s.stats.requests.Load(),
		"score_calls":        s.stats.scoreCalls.Load(),
		"interest_calls":     s.stats.interestCalls.Load(),
		"auth_rejects":       s.stats.authRejects.Load(),
		"validation_rejects": s.stats.validationRejects.Load(),
	}
}
