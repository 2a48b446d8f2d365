// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAgentCard_Validate(t *testing.T) {
	valid := AgentCard{Name: "Agent", URL: "https://a", Version: "1.0"}
	require.NoError(t, valid.Validate())

	cases := map[string]AgentCard{
		"missing name":    {URL: "https://a", Version: "1.0"},
		"missing url":     {Name: "Agent", Version: "1.0"},
		"missing version": {Name: "Agent", URL: "https://a"},
		"bad skill": {
			Name: "Agent", URL: "https://a", Version: "1.0",
			Skills: []AgentSkill{{}},
		},
	}
	for name, card := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, card.Validate())
		})
	}
}

func TestAgentCapabilities_PushNotificationsAlwaysFalse(t *testing.T) {
	var caps AgentCapabilities
	require.False(t, caps.PushNotifications)
}

func TestAgentCard_SelectInterface_PicksFirstCompatibleJSONRPC(t *testing.T) {
	card := AgentCard{
		Name: "Agent", URL: "https://fallback", Version: "1.0",
		SupportedInterfaces: []AgentInterface{
			{URL: "https://grpc.example.com", ProtocolBinding: ProtocolBindingGRPC, ProtocolVersion: "0.3"},
			{URL: "https://old.example.com", ProtocolBinding: ProtocolBindingJSONRPC, ProtocolVersion: "0.1"},
			{URL: "https://rpc.example.com", ProtocolBinding: ProtocolBindingJSONRPC, ProtocolVersion: "0.3"},
		},
	}
	iface, err := card.SelectInterface()
	require.NoError(t, err)
	require.Equal(t, "https://rpc.example.com", iface.URL)
}

func TestAgentCard_SelectInterface_FallsBackToTopLevelURL(t *testing.T) {
	card := AgentCard{Name: "Agent", URL: "https://a", Version: "1.0", ProtocolVersion: "0.3"}
	iface, err := card.SelectInterface()
	require.NoError(t, err)
	require.Equal(t, "https://a", iface.URL)
	require.Equal(t, ProtocolBindingJSONRPC, iface.ProtocolBinding)
}

func TestAgentCard_SelectInterface_ErrorsWhenNoneCompatible(t *testing.T) {
	card := AgentCard{
		Name: "Agent", Version: "1.0",
		SupportedInterfaces: []AgentInterface{
			{URL: "https://old.example.com", ProtocolBinding: ProtocolBindingJSONRPC, ProtocolVersion: "0.1"},
		},
	}
	_, err := card.SelectInterface()
	require.Error(t, err)
}
