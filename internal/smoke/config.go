// Package smoke drives a running scoreline instance with generated RPC
// traffic and checks every response against the expected envelope.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumCalls   int           // Number of calls to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Salt       string        // Shared secret for user tokens
	AdminSalt  string        // Secret for admin tokens
	AdminShare int           // Percentage of calls issued as admin
	BadShare   int           // Percentage of calls with intentionally broken payloads
	Verbose    bool          // Log every call, not just mismatches
}

// Call is one generated request together with its expected outcome.
type Call struct {
	Body         map[string]any
	Method       string
	Admin        bool
	ExpectedCode int
	// ExpectedScore is checked on successful online_score responses;
	// negative means "any score".
	ExpectedScore float64
}

// Stats holds the run's counters.
type Stats struct {
	Generated  int
	Submitted  int
	Matched    int
	Mismatched int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
