package llm

import (
	"context"
	"log/slog"
	"time"
)

// Retry policy defaults: up to 3 attempts with delays of 2s, 4s between them.
const (
	DefaultAttempts    = 3
	DefaultBackoffBase = 2 * time.Second
)

// Generator is the single-call contract the pipeline depends on. An empty
// result means "this generation step produced nothing usable".
type Generator interface {
	GenerateWithRetry(ctx context.Context, prompt string) string
}

// RetryClient applies bounded exponential backoff to a Client's Generate
// calls. The backoff sleep blocks the calling goroutine; in-flight attempts
// are not cancelled.
type RetryClient struct {
	call     func(context.Context, string) (string, error)
	attempts int
	base     time.Duration
	sleep    func(context.Context, time.Duration)
}

// NewRetryClient wraps a client with the retry policy. Non-positive
// attempts or base fall back to the defaults.
func NewRetryClient(client *Client, attempts int, base time.Duration) *RetryClient {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if base <= 0 {
		base = DefaultBackoffBase
	}
	return &RetryClient{call: client.Generate, attempts: attempts, base: base, sleep: sleepCtx}
}

// GenerateWithRetry calls Generate up to the configured number of attempts,
// doubling the sleep between retryable failures. Fatal failures and exhausted
// budgets both yield an empty string; callers treat that as "no usable
// content", not an error to propagate.
func (r *RetryClient) GenerateWithRetry(ctx context.Context, prompt string) string {
	for attempt := 1; attempt <= r.attempts; attempt++ {
		text, err := r.call(ctx, prompt)
		if err == nil {
			return text
		}
		if !retryable(err) {
			slog.Error("generation failed with fatal error", "error", err)
			return ""
		}
		if attempt == r.attempts {
			slog.Error("generation retries exhausted", "attempts", r.attempts, "error", err)
			return ""
		}
		delay := backoffDelay(r.base, attempt)
		slog.Warn("generation failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		r.sleep(ctx, delay)
	}
	return ""
}

// backoffDelay doubles per attempt starting from base, so the delay grows
// for any base: 2s gives 2s, 4s, 8s; 500ms gives 500ms, 1s, 2s.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base << (attempt - 1)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
