// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, Multiplier: 2}
	attempts := 0
	err := withRetry(context.Background(), cfg, "op", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestWithRetry_StopsOnNonRetryableStatus(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, Multiplier: 2}
	attempts := 0
	err := withRetry(context.Background(), cfg, "op", func(ctx context.Context) error {
		attempts++
		return &HTTPError{StatusCode: 400}
	})
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestWithRetry_StopsOnNonHTTPError(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 5, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, Multiplier: 2}
	attempts := 0
	sentinel := errors.New("business error")
	err := withRetry(context.Background(), cfg, "op", func(ctx context.Context) error {
		attempts++
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, attempts)
}

func TestWithRetry_NilConfigRunsOnce(t *testing.T) {
	attempts := 0
	err := withRetry(context.Background(), nil, "op", func(ctx context.Context) error {
		attempts++
		return &HTTPError{StatusCode: 503}
	})
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}
