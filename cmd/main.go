package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valeko/scoreline/internal/adapters/http/api"
	"github.com/valeko/scoreline/internal/adapters/http/swagger"
	"github.com/valeko/scoreline/internal/adapters/store"
	app "github.com/valeko/scoreline/internal/app"
	"github.com/valeko/scoreline/internal/config"
	"github.com/valeko/scoreline/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	kv := store.NewRedis(cfg.RedisAddr,
		store.WithPassword(cfg.RedisPassword),
		store.WithDB(cfg.RedisDB),
		store.WithDialTimeout(time.Duration(cfg.RedisDialTimeoutMS)*time.Millisecond),
		store.WithMaxRetries(cfg.RedisMaxRetries),
		store.WithLogger(log),
	)
	defer func() {
		if err := kv.Close(); err != nil {
			log.Warn(ctx, "closing store failed", logger.Error(err))
		}
	}()
	if err := kv.Ping(ctx); err != nil {
		// Soft cache paths work without redis; hard reads will surface
		// errors per the store contract. Start anyway, loudly.
		log.Warn(ctx, "store unreachable at startup",
			logger.String("redis_addr", cfg.RedisAddr), logger.Error(err))
	}

	svc := app.New(kv,
		app.WithLogger(log.Named("service")),
		app.WithSalt(cfg.Salt),
		app.WithAdminSalt(cfg.AdminSalt),
		app.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
	)

	mux := http.NewServeMux()
	api.NewServer(svc, kv, log.Named("http")).Register(mux)
	swagger.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
