// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/colours93/a2a"
)

// SignCard produces an [a2a.AgentCardSignature] over card's canonical
// hash claim, letting a client verify the card came from the holder of
// key without re-fetching it over a channel an attacker could tamper
// with (§4.8 supplement).
func SignCard(card a2a.AgentCard, keyID string, key *ecdsa.PrivateKey) (a2a.AgentCardSignature, error) {
	digest, err := cardDigest(card)
	if err != nil {
		return a2a.AgentCardSignature{}, err
	}

	builder := jwt.NewBuilder().Claim("cardHash", digest)
	if keyID != "" {
		builder = builder.JwtID(keyID)
	}
	token, err := builder.Build()
	if err != nil {
		return a2a.AgentCardSignature{}, fmt.Errorf("auth: build card signature token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), key))
	if err != nil {
		return a2a.AgentCardSignature{}, fmt.Errorf("auth: sign card: %w", err)
	}

	return a2a.AgentCardSignature{Protocol: "jws", Signature: string(signed), KeyID: keyID}, nil
}

// VerifyCardSignature checks that sig is a valid JWS over card's digest,
// signed by the holder of key.
func VerifyCardSignature(card a2a.AgentCard, sig a2a.AgentCardSignature, key *ecdsa.PublicKey) error {
	if sig.Protocol != "jws" {
		return fmt.Errorf("auth: unsupported card signature protocol %q", sig.Protocol)
	}

	token, err := jwt.Parse([]byte(sig.Signature), jwt.WithKey(jwa.ES256(), key))
	if err != nil {
		return fmt.Errorf("auth: verify card signature: %w", err)
	}

	digest, err := cardDigest(card)
	if err != nil {
		return err
	}
	var claimed string
	if err := token.Get("cardHash", &claimed); err != nil {
		return fmt.Errorf("auth: card signature missing cardHash claim: %w", err)
	}
	if claimed != digest {
		return fmt.Errorf("auth: card signature does not match the card's current content")
	}
	return nil
}

// cardDigest builds the stable "name|url|version" string a signature
// commits to: identity and reachability, not mutable metadata like
// descriptions. The fields are joined as-is, not hashed.
func cardDigest(card a2a.AgentCard) (string, error) {
	if card.Name == "" || card.URL == "" {
		return "", fmt.Errorf("auth: cannot digest a card missing name or url")
	}
	return fmt.Sprintf("%s|%s|%s", card.Name, card.URL, card.Version), nil
}
