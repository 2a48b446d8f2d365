// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "fmt"

// MessageRole identifies the sender of a [Message] (§3).
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleAgent MessageRole = "agent"
)

// Message is a single turn of conversation between a user and an agent,
// carrying one or more [Part]s (§3, §4.1).
type Message struct {
	Kind        string         `json:"kind"` // always "message"
	MessageID   string         `json:"messageId"`
	Role        MessageRole    `json:"role"`
	Parts       []PartValue    `json:"parts"`
	ContextID   string         `json:"contextId,omitzero"`
	TaskID      string         `json:"taskId,omitzero"`
	ReferenceIDs []string      `json:"referenceTaskIds,omitzero"`
	Metadata    map[string]any `json:"metadata,omitzero"`
	Extensions  []string       `json:"extensions,omitzero"`
}

// Validate checks the required fields of a Message.
func (m Message) Validate() error {
	if m.MessageID == "" {
		return fmt.Errorf("message: messageId must not be empty")
	}
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("message: invalid role %q", m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message: parts must not be empty")
	}
	for i, p := range m.Parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("message: part %d: %w", i, err)
		}
	}
	return nil
}

// NewAgentTextMessage builds a single-text-part Message from the agent,
// bound to the given task and context.
func NewAgentTextMessage(text, taskID, contextID string) Message {
	return Message{
		Kind:      "message",
		MessageID: NewMessageID(),
		Role:      RoleAgent,
		Parts:     []PartValue{{Part: TextPart{Text: text}}},
		TaskID:    taskID,
		ContextID: contextID,
	}
}

// NewUserTextMessage builds a single-text-part Message from the user.
func NewUserTextMessage(text string) Message {
	return Message{
		Kind:      "message",
		MessageID: NewMessageID(),
		Role:      RoleUser,
		Parts:     []PartValue{{Part: TextPart{Text: text}}},
	}
}

// Text concatenates the text of every TextPart in m, in order, ignoring
// file and data parts.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if tp, ok := p.Part.(TextPart); ok {
			out += tp.Text
		}
	}
	return out
}
