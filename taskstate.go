// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "fmt"

// TaskState is the closed set of states a [Task] may occupy.
type TaskState string

// Task states (§3).
const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateAuthRequired  TaskState = "auth-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateFailed        TaskState = "failed"
	TaskStateCanceled      TaskState = "canceled"
)

// IsValid reports whether s is one of the seven defined task states.
func (s TaskState) IsValid() bool {
	switch s {
	case TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired, TaskStateAuthRequired,
		TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return true
	default:
		return false
	}
}

// IsTerminalTaskState reports whether s is one of the absorbing states
// (Completed, Failed, Canceled) beyond which no further transition is
// permitted (§4.5).
func IsTerminalTaskState(s TaskState) bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return true
	default:
		return false
	}
}

// permittedTransitions is the adjacency table of §4.5. The zero value of
// TaskState (empty string) stands in for "no prior state", i.e. task
// creation.
var permittedTransitions = map[TaskState]map[TaskState]bool{
	"": {
		TaskStateSubmitted: true,
	},
	TaskStateSubmitted: {
		TaskStateWorking:  true,
		TaskStateCanceled: true,
		TaskStateFailed:   true,
	},
	TaskStateWorking: {
		TaskStateCompleted:     true,
		TaskStateFailed:        true,
		TaskStateCanceled:      true,
		TaskStateInputRequired: true,
		TaskStateAuthRequired:  true,
	},
	TaskStateInputRequired: {
		TaskStateWorking:  true,
		TaskStateCanceled: true,
		TaskStateFailed:   true,
	},
	TaskStateAuthRequired: {
		TaskStateWorking:  true,
		TaskStateCanceled: true,
		TaskStateFailed:   true,
	},
}

// CanTransition reports whether moving from `from` to `to` is permitted by
// the state machine in §4.5. Terminal states permit no outgoing transition.
func CanTransition(from, to TaskState) bool {
	edges, ok := permittedTransitions[from]
	if !ok {
		return false
	}
	return edges[to]
}

// InvalidTransitionError is returned when a task updater or handler attempts
// a transition not permitted by §4.5.
type InvalidTransitionError struct {
	TaskID string
	From   TaskState
	To     TaskState
}

func (e *InvalidTransitionError) Error() string {
	from := e.From
	if from == "" {
		from = "(none)"
	}
	return fmt.Sprintf("task %s: transition from %s to %s is not permitted", e.TaskID, from, e.To)
}
