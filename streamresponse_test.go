// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStreamResponse_RoundTrip(t *testing.T) {
	cases := map[string]struct {
		resp StreamResponse
	}{
		"status update": {
			resp: NewStatusUpdateResponse(TaskStatusUpdateEvent{
				TaskID: "t1", ContextID: "c1", Final: true,
				Status: TaskStatus{State: TaskStateCompleted, Timestamp: time.Unix(0, 0).UTC()},
			}),
		},
		"artifact update": {
			resp: NewArtifactUpdateResponse(TaskArtifactUpdateEvent{
				TaskID: "t1", ContextID: "c1", Artifact: NewTextArtifact("out", "hi"),
			}),
		},
		"task": {
			resp: NewTaskResponse(Task{ID: "t1", ContextID: "c1", Kind: "task", Status: TaskStatus{State: TaskStateSubmitted}}),
		},
		"message": {
			resp: NewMessageResponse(NewUserTextMessage("hi")),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body, err := tc.resp.MarshalJSON()
			require.NoError(t, err)

			var out StreamResponse
			require.NoError(t, out.UnmarshalJSON(body))
			require.Equal(t, tc.resp.Kind, out.Kind)
		})
	}
}

func TestStreamResponse_UnmarshalUnknownKind(t *testing.T) {
	var out StreamResponse
	err := out.UnmarshalJSON([]byte(`{"kind":"bogus"}`))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrParse)
}
