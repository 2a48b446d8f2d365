// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The default is
// http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeaders sets headers attached to every outgoing request, e.g. an
// Authorization bearer token.
func WithHeaders(h http.Header) Option {
	return func(c *Client) { c.headers = h.Clone() }
}

// WithLogger sets the logger used for stream lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetry enables retry-with-backoff around unary RPC calls
// (message/send, tasks/get, tasks/list, tasks/cancel). Streaming calls
// are never retried, since a partially consumed SSE stream can't be
// safely replayed. Off by default.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = &cfg }
}

// WithStreamBufferSize sets the channel buffer size for delivered stream
// events. The default is 16.
func WithStreamBufferSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.streamBufferSize = n
		}
	}
}

// RetryConfig tunes [WithRetry]'s exponential backoff.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig is a reasonable starting point: 3 attempts, 200ms
// initial delay doubling up to 2s.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2,
}
