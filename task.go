// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"time"
)

// TaskStatus captures a Task's current state, the message that produced it
// (if any), and when it was set (§3, §4.5).
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitzero"`
	Timestamp time.Time `json:"timestamp"`
}

// Task is the unit of work tracked by a server across one or more
// message/send or message/stream calls (§3).
type Task struct {
	Kind      string         `json:"kind"` // always "task"
	ID        string         `json:"id"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	History   []Message      `json:"history,omitzero"`
	Artifacts []Artifact     `json:"artifacts,omitzero"`
	Metadata  map[string]any `json:"metadata,omitzero"`
}

// Validate checks the required fields of a Task.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task: id must not be empty")
	}
	if t.ContextID == "" {
		return fmt.Errorf("task: contextId must not be empty")
	}
	if !t.Status.State.IsValid() {
		return fmt.Errorf("task: invalid status.state %q", t.Status.State)
	}
	return nil
}

// NewTask creates a fresh Task in TaskStateSubmitted, bound to a new task
// id and the given context id (or a freshly generated one if empty).
func NewTask(contextID string) *Task {
	if contextID == "" {
		contextID = NewContextID()
	}
	return &Task{
		Kind:      "task",
		ID:        NewTaskID(),
		ContextID: contextID,
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: time.Now().UTC(),
		},
	}
}

// IsTerminal reports whether t's current state is absorbing (§4.5).
func (t Task) IsTerminal() bool {
	return IsTerminalTaskState(t.Status.State)
}
