// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// withRetry runs fn under cfg's exponential backoff. A nil cfg runs fn
// exactly once.
func withRetry(ctx context.Context, cfg *RetryConfig, operation string, fn func(context.Context) error) error {
	if cfg == nil || cfg.MaxAttempts <= 0 {
		return fn(ctx)
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		httpErr, ok := err.(*HTTPError)
		if !ok || !isRetryableStatus(httpErr.StatusCode) {
			// Not a transient HTTP failure: a JSON-RPC business error
			// (e.g. task not found) won't succeed on retry either.
			return err
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		jitter := time.Duration(rand.Float64() * float64(delay) * 0.1)
		select {
		case <-time.After(delay + jitter):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("a2a client: %s failed after %d attempts: %w", operation, cfg.MaxAttempts, lastErr)
}
