// Package httputil provides the retrying HTTP fetch used when loading
// remote node-definition libraries.
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; client errors (4xx) fail immediately. Responses
// are size-capped so a misconfigured URL cannot exhaust memory.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodySize caps fetched response bodies (definition libraries are
// small text files; anything larger is a misconfiguration).
const MaxBodySize = 8 << 20 // 8 MiB

// transientError marks an error as retryable.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient wraps an error so [Retry] will attempt the operation again.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was wrapped with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Retry executes fn up to attempts times with exponential backoff.
// Only errors wrapped with [Transient] are retried; other errors are
// returned immediately. The delay doubles after each failed attempt.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsTransient(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// Fetch retrieves url with retries and returns the response body.
// 5xx responses and transport errors retry (3 attempts, 1s initial
// backoff); 4xx responses fail immediately.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var body []byte
	err := Retry(ctx, 3, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return Transient(fmt.Errorf("fetch %s: %w", url, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return Transient(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
		if err != nil {
			return Transient(fmt.Errorf("read %s: %w", url, err))
		}
		return nil
	})
	return body, err
}
