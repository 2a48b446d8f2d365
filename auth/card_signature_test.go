// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colours93/a2a"
)

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestSignAndVerifyCard(t *testing.T) {
	key := testKey(t)
	card := a2a.AgentCard{Name: "Agent", URL: "https://agent.example.com/a2a", Version: "1.0"}

	sig, err := SignCard(card, "key-1", key)
	require.NoError(t, err)
	require.Equal(t, "jws", sig.Protocol)

	require.NoError(t, VerifyCardSignature(card, sig, &key.PublicKey))
}

func TestVerifyCardSignature_RejectsTamperedCard(t *testing.T) {
	key := testKey(t)
	card := a2a.AgentCard{Name: "Agent", URL: "https://agent.example.com/a2a", Version: "1.0"}

	sig, err := SignCard(card, "key-1", key)
	require.NoError(t, err)

	tampered := card
	tampered.URL = "https://evil.example.com/a2a"
	require.Error(t, VerifyCardSignature(tampered, sig, &key.PublicKey))
}

func TestVerifyCardSignature_RejectsWrongKey(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	card := a2a.AgentCard{Name: "Agent", URL: "https://agent.example.com/a2a", Version: "1.0"}

	sig, err := SignCard(card, "key-1", key)
	require.NoError(t, err)

	require.Error(t, VerifyCardSignature(card, sig, &other.PublicKey))
}
