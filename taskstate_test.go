// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := map[string]struct {
		from, to TaskState
		want     bool
	}{
		"create":                   {from: "", to: TaskStateSubmitted, want: true},
		"submitted to working":     {from: TaskStateSubmitted, to: TaskStateWorking, want: true},
		"working to completed":     {from: TaskStateWorking, to: TaskStateCompleted, want: true},
		"working to input required": {from: TaskStateWorking, to: TaskStateInputRequired, want: true},
		"input required to working": {from: TaskStateInputRequired, to: TaskStateWorking, want: true},
		"completed is terminal":    {from: TaskStateCompleted, to: TaskStateWorking, want: false},
		"failed is terminal":       {from: TaskStateFailed, to: TaskStateWorking, want: false},
		"canceled is terminal":     {from: TaskStateCanceled, to: TaskStateWorking, want: false},
		"submitted to completed skips working": {from: TaskStateSubmitted, to: TaskStateCompleted, want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminalTaskState(t *testing.T) {
	require.True(t, IsTerminalTaskState(TaskStateCompleted))
	require.True(t, IsTerminalTaskState(TaskStateFailed))
	require.True(t, IsTerminalTaskState(TaskStateCanceled))
	require.False(t, IsTerminalTaskState(TaskStateWorking))
}

func TestTaskState_IsValid(t *testing.T) {
	require.True(t, TaskStateSubmitted.IsValid())
	require.False(t, TaskState("bogus").IsValid())
}

func TestInvalidTransitionError_Error(t *testing.T) {
	err := &InvalidTransitionError{TaskID: "t1", From: TaskStateCompleted, To: TaskStateWorking}
	require.Contains(t, err.Error(), "t1")
	require.Contains(t, err.Error(), "completed")
}
