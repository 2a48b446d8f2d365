// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskupdater provides the façade an AgentExecutor uses to drive a
// task's status and artifacts, publishing every change as a
// StreamResponse onto the task's event queue (§4.4).
package taskupdater

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/eventqueue"
)

// Updater is bound to a single (queue, taskID, contextID) triple and
// enforces the §4.5 state machine on every status transition it
// publishes.
type Updater struct {
	taskID    string
	contextID string
	queue     *eventqueue.Queue

	mu       sync.Mutex
	state    a2a.TaskState
	terminal bool
	closed   bool
}

// New creates an Updater for taskID/contextID, publishing onto queue.
// initial is the task's current state (a2a.TaskStateSubmitted for a
// freshly created task).
func New(queue *eventqueue.Queue, taskID, contextID string, initial a2a.TaskState) *Updater {
	return &Updater{
		taskID:    taskID,
		contextID: contextID,
		queue:     queue,
		state:     initial,
		terminal:  a2a.IsTerminalTaskState(initial),
	}
}

// TaskID returns the bound task id.
func (u *Updater) TaskID() string { return u.taskID }

// ContextID returns the bound context id.
func (u *Updater) ContextID() string { return u.contextID }

// State returns the task's last-published status.
func (u *Updater) State() a2a.TaskState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// IsTerminal reports whether the task has reached an absorbing state.
func (u *Updater) IsTerminal() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.terminal
}

// UpdateStatus transitions the task to state, publishing a status-update
// event. message is optional context attached to the new status. The
// transition is rejected with an *a2a.InvalidTransitionError if not
// permitted by §4.5, and any update after a terminal state is reached is
// rejected the same way.
func (u *Updater) UpdateStatus(ctx context.Context, state a2a.TaskState, message *a2a.Message) error {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return fmt.Errorf("taskupdater: updater for task %s is closed", u.taskID)
	}
	if u.terminal {
		u.mu.Unlock()
		return &a2a.InvalidTransitionError{TaskID: u.taskID, From: u.state, To: state}
	}
	if !a2a.CanTransition(u.state, state) {
		u.mu.Unlock()
		return &a2a.InvalidTransitionError{TaskID: u.taskID, From: u.state, To: state}
	}

	from := u.state
	u.state = state
	if a2a.IsTerminalTaskState(state) {
		u.terminal = true
	}
	terminal := u.terminal
	u.mu.Unlock()

	status := a2a.TaskStatus{
		State:     state,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	event := a2a.NewStatusUpdateResponse(a2a.TaskStatusUpdateEvent{
		TaskID:    u.taskID,
		ContextID: u.contextID,
		Status:    status,
		Final:     terminal,
	})
	if err := u.queue.Enqueue(event); err != nil {
		u.mu.Lock()
		u.state = from
		u.terminal = a2a.IsTerminalTaskState(from)
		u.mu.Unlock()
		return fmt.Errorf("taskupdater: publish status update: %w", err)
	}
	return nil
}

// AddArtifact publishes an artifact-update event. When appendParts is
// true and an artifact sharing ArtifactID was previously published, the
// event instructs subscribers to extend it rather than start a new one
// (§4.4).
func (u *Updater) AddArtifact(ctx context.Context, artifact a2a.Artifact, appendParts, lastChunk bool) error {
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("taskupdater: invalid artifact: %w", err)
	}
	u.mu.Lock()
	if u.closed || u.terminal {
		u.mu.Unlock()
		return fmt.Errorf("taskupdater: cannot add artifact to task %s in terminal state", u.taskID)
	}
	u.mu.Unlock()

	event := a2a.NewArtifactUpdateResponse(a2a.TaskArtifactUpdateEvent{
		TaskID:    u.taskID,
		ContextID: u.contextID,
		Artifact:  artifact,
		Append:    appendParts,
		LastChunk: lastChunk,
	})
	if err := u.queue.Enqueue(event); err != nil {
		return fmt.Errorf("taskupdater: publish artifact update: %w", err)
	}
	return nil
}

// Submit announces a freshly created task's Submitted state on the event
// queue, so a subscriber attached before the first StartWork call still
// observes it (§4.4). Callers construct the Updater with an empty initial
// state for this call, since Submitted has no prior state to transition
// from (§4.5).
func (u *Updater) Submit(ctx context.Context) error {
	return u.UpdateStatus(ctx, a2a.TaskStateSubmitted, nil)
}

// StartWork transitions the task to Working.
func (u *Updater) StartWork(ctx context.Context, message *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateWorking, message)
}

// Complete adds text as a text artifact, if provided, then transitions
// the task to Completed (§4.4).
func (u *Updater) Complete(ctx context.Context, text string) error {
	if text != "" {
		if err := u.AddArtifact(ctx, a2a.NewTextArtifact("", text), false, true); err != nil {
			return err
		}
	}
	return u.UpdateStatus(ctx, a2a.TaskStateCompleted, nil)
}

// Fail transitions the task to Failed.
func (u *Updater) Fail(ctx context.Context, text string) error {
	var msg *a2a.Message
	if text != "" {
		m := a2a.NewAgentTextMessage(text, u.taskID, u.contextID)
		msg = &m
	}
	return u.UpdateStatus(ctx, a2a.TaskStateFailed, msg)
}

// Cancel transitions the task to Canceled.
func (u *Updater) Cancel(ctx context.Context, message *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateCanceled, message)
}

// RequiresInput transitions the task to InputRequired.
func (u *Updater) RequiresInput(ctx context.Context, message *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateInputRequired, message)
}

// RequiresAuth transitions the task to AuthRequired.
func (u *Updater) RequiresAuth(ctx context.Context, message *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateAuthRequired, message)
}

// Close releases the updater. Further calls fail.
func (u *Updater) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	return nil
}
