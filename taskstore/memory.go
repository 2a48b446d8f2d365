// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/colours93/a2a"
)

// MemoryStore is the reference in-memory [Store]. Task data does not
// survive process restart. A secondary index by context id keeps
// tasks/list scoped queries from scanning every task.
type MemoryStore struct {
	mu      sync.RWMutex
	tasks   map[string]*a2a.Task
	order   []string // task ids in insertion order, for stable pagination
	byCtx   map[string][]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*a2a.Task),
		byCtx: make(map[string][]string),
	}
}

// Save implements [Store].
func (s *MemoryStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("taskstore: task must not be nil")
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("taskstore: invalid task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := deepCopyTask(task)
	if _, exists := s.tasks[task.ID]; !exists {
		s.order = append(s.order, task.ID)
		s.byCtx[task.ContextID] = append(s.byCtx[task.ContextID], task.ID)
	}
	s.tasks[task.ID] = cp
	return nil
}

// Get implements [Store].
func (s *MemoryStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, a2a.NewTaskNotFoundError(taskID)
	}
	return deepCopyTask(t), nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil
	}
	delete(s.tasks, taskID)
	s.order = removeString(s.order, taskID)
	s.byCtx[t.ContextID] = removeString(s.byCtx[t.ContextID], taskID)
	return nil
}

// List implements [Store] with opaque page tokens: the token is the index
// to resume from into the most-recently-created-first ordering, formatted
// as a decimal integer.
func (s *MemoryStore) List(ctx context.Context, params a2a.TaskListParams) (a2a.TaskListResult, error) {
	params.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.order
	if params.ContextID != "" {
		src = s.byCtx[params.ContextID]
	}
	// src is insertion-order ascending; reverse it so callers see the
	// most-recently-created task first.
	ids := make([]string, len(src))
	for i, id := range src {
		ids[len(src)-1-i] = id
	}

	start := 0
	if params.PageToken != "" {
		n, err := strconv.Atoi(params.PageToken)
		if err != nil || n < 0 {
			return a2a.TaskListResult{}, fmt.Errorf("%w: invalid page token", a2a.ErrInvalidParams)
		}
		start = n
	}

	var out []a2a.Task
	i := start
	for ; i < len(ids) && len(out) < params.PageSize; i++ {
		t := s.tasks[ids[i]]
		if t == nil {
			continue
		}
		if params.State != "" && t.Status.State != params.State {
			continue
		}
		out = append(out, *deepCopyTask(t))
	}

	result := a2a.TaskListResult{Tasks: out}
	if i < len(ids) {
		result.NextPageToken = strconv.Itoa(i)
	}
	return result, nil
}

// Count implements [Store].
func (s *MemoryStore) Count(ctx context.Context, contextID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if contextID == "" {
		return int64(len(s.tasks)), nil
	}
	return int64(len(s.byCtx[contextID])), nil
}

func removeString(ss []string, target string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func deepCopyTask(t *a2a.Task) *a2a.Task {
	cp := *t
	if t.History != nil {
		cp.History = append([]a2a.Message(nil), t.History...)
	}
	if t.Artifacts != nil {
		cp.Artifacts = append([]a2a.Artifact(nil), t.Artifacts...)
	}
	if t.Metadata != nil {
		md := make(map[string]any, len(t.Metadata))
		for k, v := range t.Metadata {
			md[k] = v
		}
		cp.Metadata = md
	}
	return &cp
}
