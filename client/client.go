// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package client implements an A2A protocol client: JSON-RPC 2.0 request
// dispatch, SSE stream decoding, and agent card resolution (§4.2, §4.3,
// §4.7, §4.8).
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/colours93/a2a"
)

// Client is a façade over an A2A agent's JSON-RPC endpoint.
type Client struct {
	rpcURL           string
	httpClient       *http.Client
	headers          http.Header
	logger           *slog.Logger
	retry            *RetryConfig
	streamBufferSize int

	nextRequestID atomic.Int64
}

// New builds a Client bound to rpcURL, the agent's JSON-RPC endpoint
// (typically an [a2a.AgentCard]'s URL field).
func New(rpcURL string, opts ...Option) *Client {
	c := &Client{
		rpcURL:           rpcURL,
		httpClient:       http.DefaultClient,
		logger:           slog.Default(),
		streamBufferSize: 16,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromCard resolves an agent's card and builds a Client bound to the
// first JSONRPC-compatible entry of its SupportedInterfaces (§4.8).
func NewFromCard(ctx context.Context, baseURL string, opts ...Option) (*Client, *a2a.AgentCard, error) {
	card, err := ResolveCard(ctx, http.DefaultClient, baseURL)
	if err != nil {
		return nil, nil, err
	}
	iface, err := card.SelectInterface()
	if err != nil {
		return nil, nil, fmt.Errorf("a2a client: %w", err)
	}
	return New(iface.URL, opts...), card, nil
}

func (c *Client) nextID() int64 { return c.nextRequestID.Add(1) }

// SendMessage implements message/send: it blocks until the agent
// completes the task and returns its final state (§4.2).
func (c *Client) SendMessage(ctx context.Context, params a2a.MessageSendParams) (*a2a.Task, error) {
	var task a2a.Task
	if err := c.callUnary(ctx, a2a.MethodMessageSend, params, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// StreamMessage implements message/stream: the agent's task and artifact
// events are delivered incrementally over the returned Stream (§4.3).
func (c *Client) StreamMessage(ctx context.Context, params a2a.MessageSendParams) (*Stream, error) {
	resp, err := c.doRPC(ctx, a2a.MethodMessageStream, params, true)
	if err != nil {
		return nil, err
	}
	return newStream(ctx, resp, c.streamBufferSize, c.logger), nil
}

// GetTask implements tasks/get (§4.2).
func (c *Client) GetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	var task a2a.Task
	if err := c.callUnary(ctx, a2a.MethodTasksGet, params, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks implements tasks/list (§4.2).
func (c *Client) ListTasks(ctx context.Context, params a2a.TaskListParams) (a2a.TaskListResult, error) {
	params.Normalize()
	var result a2a.TaskListResult
	if err := c.callUnary(ctx, a2a.MethodTasksList, params, &result); err != nil {
		return a2a.TaskListResult{}, err
	}
	return result, nil
}

// CancelTask implements tasks/cancel (§4.2, §4.5).
func (c *Client) CancelTask(ctx context.Context, taskID string) (*a2a.Task, error) {
	var task a2a.Task
	if err := c.callUnary(ctx, a2a.MethodTasksCancel, a2a.TaskIDParams{ID: taskID}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SubscribeTask implements tasks/subscribe: it reattaches to the live
// event stream of an already-running task without re-invoking the
// executor (§4.3).
func (c *Client) SubscribeTask(ctx context.Context, taskID string) (*Stream, error) {
	resp, err := c.doRPC(ctx, a2a.MethodTasksSubscribe, a2a.TaskQueryParams{ID: taskID}, true)
	if err != nil {
		return nil, fmt.Errorf("a2a client: subscribe to task %s: %w", taskID, err)
	}
	return newStream(ctx, resp, c.streamBufferSize, c.logger), nil
}
