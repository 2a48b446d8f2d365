// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/auth"
)

// HTTPHandler adapts a RequestHandler to JSON-RPC 2.0 over HTTP, with
// message/stream and tasks/subscribe served as Server-Sent Events
// (§4.6, §4.7, §6). It also serves the AgentCard at
// [a2a.AgentCardWellKnownPath].
type HTTPHandler struct {
	Handler   RequestHandler
	Card      a2a.AgentCard
	Logger    *slog.Logger
	Heartbeat time.Duration // SSE keep-alive comment interval; 0 disables

	// UserFromRequest authenticates r, returning the caller identity to
	// attach to the request context ([auth.FromContext]). Nil means every
	// caller is auth.UnauthenticatedUser; this module implements no
	// authentication scheme itself (Non-goal), only the extension point.
	UserFromRequest func(r *http.Request) auth.User
}

// NewHTTPHandler builds an HTTPHandler.
func NewHTTPHandler(handler RequestHandler, card a2a.AgentCard, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{Handler: handler, Card: card, Logger: logger, Heartbeat: 30 * time.Second}
}

// Mux returns an http.ServeMux with every route this handler serves
// registered: the RPC endpoint and the well-known agent card path.
// a2a.ExtendedAgentCardPath is not served.
func (h *HTTPHandler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(a2a.DefaultRPCURL, h.ServeRPC)
	mux.HandleFunc(a2a.AgentCardWellKnownPath, h.ServeAgentCard)
	return mux
}

// ServeAgentCard writes the AgentCard as JSON.
func (h *HTTPHandler) ServeAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, h.Card); err != nil {
		h.Logger.Error("failed to write agent card", "error", err)
	}
}

// ServeRPC handles a single JSON-RPC request. Streaming methods
// (message/stream, tasks/subscribe) switch the response to SSE; all
// others return a single JSON-RPC response object.
func (h *HTTPHandler) ServeRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req a2a.Request
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		h.writeJSON(w, a2a.NewErrorResponse(nil, a2a.ErrParse.WithMessage(err.Error())))
		return
	}
	if err := req.Validate(); err != nil {
		h.writeJSON(w, a2a.NewErrorResponse(req.ID, a2a.ErrInvalidRequest.WithMessage(err.Error())))
		return
	}

	if h.UserFromRequest != nil {
		r = r.WithContext(auth.NewContext(r.Context(), h.UserFromRequest(r)))
	}

	switch req.Method {
	case a2a.MethodMessageStream:
		h.serveStream(w, r, req, h.streamMessage)
	case a2a.MethodTasksSubscribe:
		h.serveStream(w, r, req, h.streamSubscribe)
	default:
		h.serveUnary(w, r, req)
	}
}

func (h *HTTPHandler) serveUnary(w http.ResponseWriter, r *http.Request, req a2a.Request) {
	ctx := r.Context()
	result, rpcErr := h.dispatchUnary(ctx, req)
	if rpcErr != nil {
		h.writeJSON(w, a2a.NewErrorResponse(req.ID, rpcErr))
		return
	}
	h.writeJSON(w, a2a.NewSuccessResponse(req.ID, result))
}

func (h *HTTPHandler) dispatchUnary(ctx context.Context, req a2a.Request) (any, *a2a.RPCError) {
	switch req.Method {
	case a2a.MethodMessageSend:
		var params a2a.MessageSendParams
		if err := req.DecodeParams(&params); err != nil {
			return nil, toRPCError(err)
		}
		task, err := h.Handler.OnMessageSend(ctx, params)
		if err != nil {
			return nil, toRPCError(err)
		}
		return task, nil
	case a2a.MethodTasksGet:
		var params a2a.TaskQueryParams
		if err := req.DecodeParams(&params); err != nil {
			return nil, toRPCError(err)
		}
		task, err := h.Handler.OnTasksGet(ctx, params)
		if err != nil {
			return nil, toRPCError(err)
		}
		return task, nil
	case a2a.MethodTasksList:
		var params a2a.TaskListParams
		if err := req.DecodeParams(&params); err != nil {
			return nil, toRPCError(err)
		}
		result, err := h.Handler.OnTasksList(ctx, params)
		if err != nil {
			return nil, toRPCError(err)
		}
		return result, nil
	case a2a.MethodTasksCancel:
		var params a2a.TaskIDParams
		if err := req.DecodeParams(&params); err != nil {
			return nil, toRPCError(err)
		}
		task, err := h.Handler.OnTasksCancel(ctx, params)
		if err != nil {
			return nil, toRPCError(err)
		}
		return task, nil
	default:
		return nil, a2a.ErrMethodNotFound.WithMessage(fmt.Sprintf("unknown method %q", req.Method))
	}
}

func (h *HTTPHandler) streamMessage(ctx context.Context, req a2a.Request) (<-chan a2a.StreamResponse, *a2a.RPCError) {
	var params a2a.MessageSendParams
	if err := req.DecodeParams(&params); err != nil {
		return nil, toRPCError(err)
	}
	ch, err := h.Handler.OnMessageStream(ctx, params)
	if err != nil {
		return nil, toRPCError(err)
	}
	return ch, nil
}

func (h *HTTPHandler) streamSubscribe(ctx context.Context, req a2a.Request) (<-chan a2a.StreamResponse, *a2a.RPCError) {
	var params a2a.TaskQueryParams
	if err := req.DecodeParams(&params); err != nil {
		return nil, toRPCError(err)
	}
	ch, err := h.Handler.OnTasksSubscribe(ctx, params)
	if err != nil {
		return nil, toRPCError(err)
	}
	return ch, nil
}

// serveStream sends open, a heartbeat comment on an interval, then every
// event start yields, as Server-Sent Events (§4.7).
func (h *HTTPHandler) serveStream(w http.ResponseWriter, r *http.Request, req a2a.Request, start func(context.Context, a2a.Request) (<-chan a2a.StreamResponse, *a2a.RPCError)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	ch, rpcErr := start(ctx, req)
	if rpcErr != nil {
		h.writeJSON(w, a2a.NewErrorResponse(req.ID, rpcErr))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var heartbeat <-chan time.Time
	if h.Heartbeat > 0 {
		ticker := time.NewTicker(h.Heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := h.writeSSE(w, flusher, req.ID, event); err != nil {
				h.Logger.Debug("sse write failed, subscriber likely disconnected", "error", err)
				return
			}
		}
	}
}

func (h *HTTPHandler) writeSSE(w http.ResponseWriter, flusher http.Flusher, id any, event a2a.StreamResponse) error {
	resp := a2a.NewSuccessResponse(id, event)
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", body); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, resp *a2a.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, resp); err != nil {
		h.Logger.Error("failed to write jsonrpc response", "error", err)
	}
}

// toRPCError adapts any error into an *a2a.RPCError, defaulting to
// ErrInternal when err isn't already one.
func toRPCError(err error) *a2a.RPCError {
	if err == nil {
		return nil
	}
	var rpcErr *a2a.RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return a2a.ErrInternal.WithMessage(err.Error())
}
