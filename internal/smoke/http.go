package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valeko/scoreline/internal/domain/rpc"
	"github.com/valeko/scoreline/pkg/logger"
)

// httpClient wraps http.Client with the run's timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// callOutcome classifies one submitted call.
type callOutcome int

const (
	outcomeMatched callOutcome = iota
	outcomeMismatched
	outcomeFailed
)

// submitCalls pushes the generated calls through a worker pool and checks
// each response envelope against the call's expectation.
func submitCalls(ctx context.Context, config *Config, calls []Call, stats *Stats) {
	logger.Get().Info(ctx, "submitting calls",
		logger.Int("count", len(calls)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/method"

	var submitted, matched, mismatched, failed int64

	callChan := make(chan Call, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for call := range callChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&submitted, 1)
				switch submitSingleCall(ctx, config, client, url, call) {
				case outcomeMatched:
					atomic.AddInt64(&matched, 1)
				case outcomeMismatched:
					atomic.AddInt64(&mismatched, 1)
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(callChan)
		for _, call := range calls {
			select {
			case <-ctx.Done():
				return
			case callChan <- call:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Matched = int(atomic.LoadInt64(&matched))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Failed = int(atomic.LoadInt64(&failed))
}

// wireEnvelope covers both shapes the API returns.
type wireEnvelope struct {
	Code     int             `json:"code"`
	Error    string          `json:"error"`
	Response json.RawMessage `json:"response"`
}

func submitSingleCall(ctx context.Context, config *Config, client *httpClient, url string, call Call) callOutcome {
	resp, err := client.postJSON(ctx, url, call.Body)
	if err != nil {
		logger.Get().Warn(ctx, "call failed", logger.String("method", call.Method), logger.Error(err))
		return outcomeFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed
	}

	var envelope wireEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Get().Warn(ctx, "unparseable envelope",
			logger.String("method", call.Method),
			logger.String("body", string(body)))
		return outcomeFailed
	}

	if envelope.Code != call.ExpectedCode || resp.StatusCode != call.ExpectedCode {
		logger.Get().Warn(ctx, "envelope code mismatch",
			logger.String("method", call.Method),
			logger.Bool("admin", call.Admin),
			logger.Int("expected", call.ExpectedCode),
			logger.Int("got", envelope.Code),
			logger.Int("httpStatus", resp.StatusCode),
			logger.String("error", envelope.Error))
		return outcomeMismatched
	}

	if call.ExpectedCode == rpc.StatusOK && call.Method == rpc.MethodOnlineScore {
		var result rpc.ScoreResult
		if err := json.Unmarshal(envelope.Response, &result); err != nil {
			logger.Get().Warn(ctx, "unparseable score response", logger.Error(err))
			return outcomeMismatched
		}
		if call.ExpectedScore >= 0 && result.Score != call.ExpectedScore {
			logger.Get().Warn(ctx, "score mismatch",
				logger.Float64("expected", call.ExpectedScore),
				logger.Float64("got", result.Score))
			return outcomeMismatched
		}
	}

	if config.Verbose {
		logger.Get().Debug(ctx, "call matched",
			logger.String("method", call.Method),
			logger.Int("code", envelope.Code))
	}
	return outcomeMatched
}
