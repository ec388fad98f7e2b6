// Command smoke generates signed RPC traffic against a running scoreline
// instance and verifies every response envelope.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/valeko/scoreline/internal/domain/auth"
	"github.com/valeko/scoreline/internal/smoke"
	"github.com/valeko/scoreline/pkg/logger"
)

const (
	defaultNumCalls   = 1000
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
	defaultAdminShare = 10
	defaultBadShare   = 20
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numCalls   = flag.Int("calls", defaultNumCalls, "Number of calls to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		salt       = flag.String("salt", auth.DefaultSalt, "Shared secret for user tokens")
		adminSalt  = flag.String("admin-salt", auth.DefaultAdminSalt, "Secret for admin tokens")
		adminShare = flag.Int("admin-share", defaultAdminShare, "Percentage of calls issued as admin")
		badShare   = flag.Int("bad-share", defaultBadShare, "Percentage of calls with invalid payloads")
		verbose    = flag.Bool("verbose", false, "Log every call, not just mismatches")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL:    *baseURL,
		NumCalls:   *numCalls,
		Workers:    *workers,
		Timeout:    *timeout,
		Salt:       *salt,
		AdminSalt:  *adminSalt,
		AdminShare: *adminShare,
		BadShare:   *badShare,
		Verbose:    *verbose,
	}

	if err := smoke.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "smoke run failed", logger.Error(err))
		os.Exit(1)
	}
}
