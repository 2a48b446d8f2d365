// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskstore defines the pluggable persistence interface for
// [github.com/colours93/a2a.Task] records (§4.2, tasks/get, tasks/list,
// tasks/cancel) plus a default in-memory implementation and an optional
// GORM-backed one.
package taskstore

import (
	"context"

	"github.com/colours93/a2a"
)

// Store persists and retrieves Tasks. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save creates or overwrites the task keyed by task.ID.
	Save(ctx context.Context, task *a2a.Task) error

	// Get returns the task with the given id, or a2a.ErrTaskNotFound.
	Get(ctx context.Context, taskID string) (*a2a.Task, error)

	// Delete removes the task with the given id. Deleting a task that does
	// not exist is not an error.
	Delete(ctx context.Context, taskID string) error

	// List returns tasks matching params, most-recently-created first,
	// along with a page token for the next page (empty when exhausted).
	List(ctx context.Context, params a2a.TaskListParams) (a2a.TaskListResult, error)

	// Count returns the number of stored tasks, optionally scoped to a
	// context id.
	Count(ctx context.Context, contextID string) (int64, error)
}
