// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"fmt"
)

// JSON-RPC and A2A protocol error codes (§7).
const (
	ErrorCodeParse                                = -32700
	ErrorCodeInvalidRequest                        = -32600
	ErrorCodeMethodNotFound                        = -32601
	ErrorCodeInvalidParams                         = -32602
	ErrorCodeInternal                              = -32603
	ErrorCodeTaskNotFound                          = -32001
	ErrorCodeTaskNotCancelable                     = -32002
	ErrorCodePushNotificationNotSupported          = -32003
	ErrorCodeUnsupportedOperation                  = -32004
	ErrorCodeContentTypeNotSupported               = -32005
	ErrorCodeInvalidAgentResponse                  = -32006
	ErrorCodeAuthenticatedExtendedCardNotConfigured = -32007
)

// RPCError is a JSON-RPC 2.0 error object, and the concrete type every
// sentinel below is compared against via [errors.As] (§7).
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitzero"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("a2a: %s (code %d)", e.Message, e.Code)
}

// newRPCError builds an *RPCError with the given code and message.
func newRPCError(code int, message string) *RPCError {
	return &RPCError{Code: code, Message: message}
}

// Sentinel errors for each entry of the §7 error taxonomy. Handlers
// compare against these with errors.Is, or wrap them with additional
// context via fmt.Errorf("...: %w", ErrTaskNotFound).
var (
	ErrParse                                = newRPCError(ErrorCodeParse, "invalid JSON was received by the server")
	ErrInvalidRequest                        = newRPCError(ErrorCodeInvalidRequest, "the JSON sent is not a valid request object")
	ErrMethodNotFound                        = newRPCError(ErrorCodeMethodNotFound, "the method does not exist or is not available")
	ErrInvalidParams                         = newRPCError(ErrorCodeInvalidParams, "invalid method parameters")
	ErrInternal                              = newRPCError(ErrorCodeInternal, "internal JSON-RPC error")
	ErrTaskNotFound                          = newRPCError(ErrorCodeTaskNotFound, "task not found")
	ErrTaskNotCancelable                     = newRPCError(ErrorCodeTaskNotCancelable, "task cannot be canceled")
	ErrPushNotificationNotSupported          = newRPCError(ErrorCodePushNotificationNotSupported, "push notifications are not supported")
	ErrUnsupportedOperation                  = newRPCError(ErrorCodeUnsupportedOperation, "this operation is not supported")
	ErrContentTypeNotSupported               = newRPCError(ErrorCodeContentTypeNotSupported, "incompatible content types")
	ErrInvalidAgentResponse                  = newRPCError(ErrorCodeInvalidAgentResponse, "agent returned an invalid response for the current method")
	ErrAuthenticatedExtendedCardNotConfigured = newRPCError(ErrorCodeAuthenticatedExtendedCardNotConfigured, "authenticated extended agent card is not configured")
)

// Is allows errors.Is(err, ErrTaskNotFound) to match any *RPCError sharing
// the same code, regardless of Message/Data, since handlers construct
// fresh instances with request-specific messages.
func (e *RPCError) Is(target error) bool {
	var t *RPCError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of e with Message replaced, for handlers
// that need to attach request-specific detail while keeping the code.
func (e *RPCError) WithMessage(message string) *RPCError {
	return &RPCError{Code: e.Code, Message: message, Data: e.Data}
}

// WithData returns a copy of e with Data attached.
func (e *RPCError) WithData(data any) *RPCError {
	return &RPCError{Code: e.Code, Message: e.Message, Data: data}
}

// NewTaskNotFoundError builds the taskId-scoped variant of ErrTaskNotFound.
func NewTaskNotFoundError(taskID string) *RPCError {
	return ErrTaskNotFound.WithMessage(fmt.Sprintf("task not found: %s", taskID)).WithData(map[string]string{"taskId": taskID})
}

// NewTaskNotCancelableError builds the taskId-scoped variant of
// ErrTaskNotCancelable.
func NewTaskNotCancelableError(taskID string, state TaskState) *RPCError {
	return ErrTaskNotCancelable.WithMessage(fmt.Sprintf("task %s in state %s cannot be canceled", taskID, state)).WithData(map[string]string{"taskId": taskID, "state": string(state)})
}
