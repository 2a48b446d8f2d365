// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// StreamEventKind is the "kind" discriminator of a [StreamResponse]
// tagged union (§4.3).
type StreamEventKind string

const (
	StreamEventStatusUpdate   StreamEventKind = "status-update"
	StreamEventArtifactUpdate StreamEventKind = "artifact-update"
	StreamEventTask           StreamEventKind = "task"
	StreamEventMessage        StreamEventKind = "message"
)

// TaskStatusUpdateEvent reports a task's status transition to stream
// subscribers.
type TaskStatusUpdateEvent struct {
	TaskID    string         `json:"taskId"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	Final     bool           `json:"final"`
	Metadata  map[string]any `json:"metadata,omitzero"`
}

// TaskArtifactUpdateEvent reports a new or extended artifact to stream
// subscribers.
type TaskArtifactUpdateEvent struct {
	TaskID    string         `json:"taskId"`
	ContextID string         `json:"contextId"`
	Artifact  Artifact       `json:"artifact"`
	Append    bool           `json:"append,omitzero"`
	LastChunk bool           `json:"lastChunk,omitzero"`
	Metadata  map[string]any `json:"metadata,omitzero"`
}

// StreamResponse is a single event delivered over an SSE stream in
// response to message/stream or tasks/subscribe (§4.3, §4.7). Exactly one
// of the embedded fields is populated, matching Kind.
type StreamResponse struct {
	Kind            StreamEventKind
	StatusUpdate    *TaskStatusUpdateEvent
	ArtifactUpdate  *TaskArtifactUpdateEvent
	Task            *Task
	Message         *Message
}

// NewStatusUpdateResponse wraps a TaskStatusUpdateEvent.
func NewStatusUpdateResponse(e TaskStatusUpdateEvent) StreamResponse {
	return StreamResponse{Kind: StreamEventStatusUpdate, StatusUpdate: &e}
}

// NewArtifactUpdateResponse wraps a TaskArtifactUpdateEvent.
func NewArtifactUpdateResponse(e TaskArtifactUpdateEvent) StreamResponse {
	return StreamResponse{Kind: StreamEventArtifactUpdate, ArtifactUpdate: &e}
}

// NewTaskResponse wraps a full Task snapshot.
func NewTaskResponse(t Task) StreamResponse {
	return StreamResponse{Kind: StreamEventTask, Task: &t}
}

// NewMessageResponse wraps a terminal Message (a direct reply with no
// backing task).
func NewMessageResponse(m Message) StreamResponse {
	return StreamResponse{Kind: StreamEventMessage, Message: &m}
}

// MarshalJSON implements [json.Marshaler] by delegating to the payload
// selected by Kind, injecting its "kind" field.
func (r StreamResponse) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case StreamEventStatusUpdate:
		return marshalWithKind(r.Kind, r.StatusUpdate)
	case StreamEventArtifactUpdate:
		return marshalWithKind(r.Kind, r.ArtifactUpdate)
	case StreamEventTask:
		return marshalWithKind(r.Kind, r.Task)
	case StreamEventMessage:
		return marshalWithKind(r.Kind, r.Message)
	default:
		return nil, fmt.Errorf("stream response: unknown kind %q", r.Kind)
	}
}

// marshalWithKind marshals payload and splices in its "kind" field.
func marshalWithKind(kind StreamEventKind, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	raw["kind"] = kind
	return json.Marshal(raw)
}

// UnmarshalJSON implements [json.Unmarshaler] by peeking the "kind" field
// and decoding into the matching variant.
func (r *StreamResponse) UnmarshalJSON(data []byte) error {
	var peek struct {
		Kind StreamEventKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return fmt.Errorf("decode stream response: %w", err)
	}
	switch peek.Kind {
	case StreamEventStatusUpdate:
		var e TaskStatusUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*r = StreamResponse{Kind: peek.Kind, StatusUpdate: &e}
	case StreamEventArtifactUpdate:
		var e TaskArtifactUpdateEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*r = StreamResponse{Kind: peek.Kind, ArtifactUpdate: &e}
	case StreamEventTask:
		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		*r = StreamResponse{Kind: peek.Kind, Task: &t}
	case StreamEventMessage:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*r = StreamResponse{Kind: peek.Kind, Message: &m}
	default:
		return fmt.Errorf("%w: unknown stream response kind %q", ErrParse, peek.Kind)
	}
	return nil
}
