// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	cases := map[string]struct {
		msg     Message
		wantErr bool
	}{
		"valid": {
			msg: Message{MessageID: "m1", Role: RoleUser, Parts: []PartValue{{Part: TextPart{Text: "hi"}}}},
		},
		"missing id": {
			msg:     Message{Role: RoleUser, Parts: []PartValue{{Part: TextPart{Text: "hi"}}}},
			wantErr: true,
		},
		"bad role": {
			msg:     Message{MessageID: "m1", Role: "admin", Parts: []PartValue{{Part: TextPart{Text: "hi"}}}},
			wantErr: true,
		},
		"no parts": {
			msg:     Message{MessageID: "m1", Role: RoleUser},
			wantErr: true,
		},
		"invalid part": {
			msg:     Message{MessageID: "m1", Role: RoleUser, Parts: []PartValue{{Part: TextPart{}}}},
			wantErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewUserTextMessage_Text(t *testing.T) {
	m := NewUserTextMessage("hello world")
	require.Equal(t, RoleUser, m.Role)
	require.Equal(t, "hello world", m.Text())
	require.NotEmpty(t, m.MessageID)
}

func TestNewAgentTextMessage_BindsTaskAndContext(t *testing.T) {
	m := NewAgentTextMessage("reply", "task-1", "ctx-1")
	require.Equal(t, RoleAgent, m.Role)
	require.Equal(t, "task-1", m.TaskID)
	require.Equal(t, "ctx-1", m.ContextID)
	require.Equal(t, "reply", m.Text())
}

func TestMessage_Text_IgnoresNonTextParts(t *testing.T) {
	m := Message{
		Parts: []PartValue{
			{Part: TextPart{Text: "a"}},
			{Part: DataPart{Data: 1}},
			{Part: TextPart{Text: "b"}},
		},
	}
	require.Equal(t, "ab", m.Text())
}
