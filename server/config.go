// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/colours93/a2a"
)

// Config holds the environment-sourced settings for running an A2A HTTP
// server. Fields are populated via envconfig, matching every A2A_*
// variable a deployment may set.
type Config struct {
	ListenAddr       string `env:"A2A_LISTEN_ADDR,default=:8080"`
	EventQueueSize   int    `env:"A2A_EVENT_QUEUE_SIZE,default=256"`
	CancelDeadlineMS int    `env:"A2A_CANCEL_DEADLINE_MS,default=30000"`
	DatabaseURL      string `env:"A2A_DATABASE_URL"` // empty selects the in-memory task store
	LogLevel         string `env:"A2A_LOG_LEVEL,default=info"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("server: load config: %w", err)
	}
	if cfg.EventQueueSize <= 0 {
		cfg.EventQueueSize = a2a.DefaultEventQueueSize
	}
	return cfg, nil
}
