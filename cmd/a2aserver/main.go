// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command a2aserver runs a standalone A2A JSON-RPC + SSE server backed by
// a pluggable AgentExecutor (§4.6, §4.7).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/agentexecutor"
	"github.com/colours93/a2a/eventqueue"
	"github.com/colours93/a2a/server"
	"github.com/colours93/a2a/taskstore"
)

func init() {
	uuid.EnableRandPool()
}

// noopExecutor immediately fails every task; replace it by wiring in a
// real AgentExecutor before deploying this binary.
type noopExecutor struct {
	agentexecutor.BaseExecutor
}

func (noopExecutor) Execute(ctx context.Context, reqCtx agentexecutor.RequestContext, queue *eventqueue.Queue) error {
	return queue.Enqueue(a2a.NewStatusUpdateResponse(a2a.TaskStatusUpdateEvent{
		TaskID:    reqCtx.TaskID,
		ContextID: reqCtx.ContextID,
		Final:     true,
		Status: a2a.TaskStatus{
			State: a2a.TaskStateFailed,
		},
	}))
}

func main() {
	ctx := context.Background()

	cfg, err := server.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := newStore(cfg)
	if err != nil {
		logger.Error("failed to initialize task store", "error", err)
		os.Exit(1)
	}

	queues := eventqueue.NewInMemoryManager(cfg.EventQueueSize)
	handler := server.NewDefaultRequestHandler(noopExecutor{}, store, queues, logger)
	handler.CancelTimeout = time.Duration(cfg.CancelDeadlineMS) * time.Millisecond

	card := a2a.AgentCard{
		Name:            "A2A Server",
		URL:             "http://" + cfg.ListenAddr + a2a.DefaultRPCURL,
		Version:         "0.1.0",
		ProtocolVersion: a2a.ProtocolVersion,
		Capabilities: a2a.AgentCapabilities{
			Streaming:              true,
			StateTransitionHistory: true,
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		SupportedInterfaces: []a2a.AgentInterface{
			{
				URL:             "http://" + cfg.ListenAddr + a2a.DefaultRPCURL,
				ProtocolBinding: a2a.ProtocolBindingJSONRPC,
				ProtocolVersion: a2a.ProtocolVersion,
			},
		},
	}

	httpHandler := server.NewHTTPHandler(handler, card, logger)

	logger.Info("a2a server listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, httpHandler.Mux()); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg server.Config) (taskstore.Store, error) {
	if cfg.DatabaseURL == "" {
		return taskstore.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("a2aserver: A2A_DATABASE_URL is set but no GORM dialector is wired in; connect one and pass its *gorm.DB to taskstore.NewGORMStore in a GORMStoreConfig")
}
