// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// JSON-RPC method names this module's request handler dispatches on
// (§4.6).
const (
	MethodMessageSend    = "message/send"
	MethodMessageStream  = "message/stream"
	MethodTasksGet       = "tasks/get"
	MethodTasksList      = "tasks/list"
	MethodTasksCancel    = "tasks/cancel"
	MethodTasksSubscribe = "tasks/subscribe"
)

// JSONRPCVersion is the only value the "jsonrpc" field of a request or
// response may hold.
const JSONRPCVersion = "2.0"

// Request is a JSON-RPC 2.0 request object (§4.6).
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  jsontext.Value  `json:"params,omitzero"`
	ID      any             `json:"id,omitzero"`
}

// Validate checks the envelope-level fields of a Request.
func (r *Request) Validate() error {
	if r.JSONRPC != JSONRPCVersion {
		return fmt.Errorf("jsonrpc: expected version %q, got %q", JSONRPCVersion, r.JSONRPC)
	}
	if r.Method == "" {
		return fmt.Errorf("jsonrpc: method must not be empty")
	}
	return nil
}

// DecodeParams unmarshals r.Params into v.
func (r *Request) DecodeParams(v any) error {
	if len(r.Params) == 0 {
		return fmt.Errorf("%w: params must not be empty for method %s", ErrInvalidParams, r.Method)
	}
	if err := json.Unmarshal(r.Params, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// Response is a JSON-RPC 2.0 response object. Exactly one of Result or
// Error is populated.
type Response struct {
	JSONRPC string     `json:"jsonrpc"`
	Result  any        `json:"result,omitzero"`
	Error   *RPCError  `json:"error,omitzero"`
	ID      any        `json:"id"`
}

// NewSuccessResponse builds a Response carrying a successful result.
func NewSuccessResponse(id, result any) *Response {
	return &Response{JSONRPC: JSONRPCVersion, Result: result, ID: id}
}

// NewErrorResponse builds a Response carrying an error.
func NewErrorResponse(id any, err *RPCError) *Response {
	return &Response{JSONRPC: JSONRPCVersion, Error: err, ID: id}
}
