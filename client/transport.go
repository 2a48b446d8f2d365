// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-json-experiment/json"

	"github.com/colours93/a2a"
)

// callUnary issues a single JSON-RPC request and decodes its response,
// retrying per c.retry when configured (§4.6).
func (c *Client) callUnary(ctx context.Context, method string, params, result any) error {
	return withRetry(ctx, c.retry, method, func(ctx context.Context) error {
		resp, err := c.doRPC(ctx, method, params, false)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var rpcResp a2a.Response
		if err := json.UnmarshalRead(resp.Body, &rpcResp); err != nil {
			return fmt.Errorf("a2a client: decode response: %w", err)
		}
		if rpcResp.Error != nil {
			return rpcResp.Error
		}
		if result == nil {
			return nil
		}
		body, err := json.Marshal(rpcResp.Result)
		if err != nil {
			return fmt.Errorf("a2a client: re-marshal result: %w", err)
		}
		return json.Unmarshal(body, result)
	})
}

// doRPC POSTs a JSON-RPC envelope to the server and returns the raw HTTP
// response for the caller to consume (as a decoded JSON-RPC response for
// unary calls, or as an SSE stream for streaming ones).
func (c *Client) doRPC(ctx context.Context, method string, params any, stream bool) (*http.Response, error) {
	req := a2a.Request{JSONRPC: a2a.JSONRPCVersion, Method: method, ID: c.nextID()}
	if params != nil {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("a2a client: marshal params: %w", err)
		}
		req.Params = body
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("a2a client: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("a2a client: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("a2a client: %s: %w", method, err)
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}
