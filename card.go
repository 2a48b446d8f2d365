// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "fmt"

// AgentProvider identifies the organization that operates an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitzero"`
}

// AgentSkill describes one capability an agent exposes (§4.8).
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitzero"`
	Examples    []string `json:"examples,omitzero"`
	InputModes  []string `json:"inputModes,omitzero"`
	OutputModes []string `json:"outputModes,omitzero"`
}

// Validate checks the required fields of an AgentSkill.
func (s AgentSkill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("agent skill: id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("agent skill: name must not be empty")
	}
	return nil
}

// AgentCapabilities advertises optional protocol features an agent
// supports (§4.8). PushNotifications is always false: this module does
// not implement webhook push delivery (Non-goal).
type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

// SecuritySchemeType names the authentication scheme kinds a card may
// declare it accepts.
type SecuritySchemeType string

const (
	SecuritySchemeAPIKey SecuritySchemeType = "apiKey"
	SecuritySchemeHTTP   SecuritySchemeType = "http"
	SecuritySchemeOAuth2 SecuritySchemeType = "oauth2"
	SecuritySchemeOIDC   SecuritySchemeType = "openIdConnect"
)

// SecurityScheme documents a single authentication mechanism an agent's
// RPC endpoint accepts.
type SecurityScheme struct {
	Type             SecuritySchemeType `json:"type"`
	Description      string             `json:"description,omitzero"`
	Name             string             `json:"name,omitzero"`   // apiKey
	In               string             `json:"in,omitzero"`     // apiKey: header|query|cookie
	Scheme           string             `json:"scheme,omitzero"` // http: bearer|basic
	OpenIDConnectURL string             `json:"openIdConnectUrl,omitzero"`
}

// ProtocolBinding names the wire protocol an [AgentInterface] speaks.
type ProtocolBinding string

const (
	ProtocolBindingJSONRPC  ProtocolBinding = "JSONRPC"
	ProtocolBindingGRPC     ProtocolBinding = "GRPC"
	ProtocolBindingHTTPJSON ProtocolBinding = "HTTP+JSON"
)

// AgentInterface is one endpoint under which an agent's RPC surface is
// reachable: a URL, the protocol it speaks, the protocol version it
// implements, and an optional tenant scope (§3, §4.8).
type AgentInterface struct {
	URL             string          `json:"url"`
	ProtocolBinding ProtocolBinding `json:"protocolBinding"`
	ProtocolVersion string          `json:"protocolVersion,omitzero"`
	Tenant          string          `json:"tenant,omitzero"`
}

// AgentCardSignature is a signed JWT whose "cardHash" claim commits to an
// AgentCard's name, URL and version, letting a client verify a card's
// authenticity (§4.8 supplement); see auth.SignCard and
// auth.VerifyCardSignature.
type AgentCardSignature struct {
	Protocol  string `json:"protocol"` // "jws"
	Signature string `json:"signature"`
	KeyID     string `json:"keyId,omitzero"`
}

// AgentCard is the discovery document an agent publishes at
// /.well-known/agent.json describing its identity, skills, and how to
// reach it (§4.8).
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	ProtocolVersion    string            `json:"protocolVersion"`
	Provider           *AgentProvider    `json:"provider,omitzero"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Skills             []AgentSkill      `json:"skills"`
	// SupportedInterfaces lists every endpoint this agent's RPC surface is
	// reachable under (§4.8). Clients choose the first entry whose
	// ProtocolBinding is JSONRPC and whose ProtocolVersion is compatible;
	// see [AgentCard.SelectInterface].
	SupportedInterfaces  []AgentInterface          `json:"supportedInterfaces,omitzero"`
	SecuritySchemes      map[string]SecurityScheme `json:"securitySchemes,omitzero"`
	Security             []map[string][]string     `json:"security,omitzero"`
	SupportsExtendedCard bool                      `json:"supportsAuthenticatedExtendedCard,omitzero"`
	Signatures           []AgentCardSignature      `json:"signatures,omitzero"`
}

// Validate checks the required fields of an AgentCard.
func (c AgentCard) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("agent card: name must not be empty")
	}
	if c.URL == "" && len(c.SupportedInterfaces) == 0 {
		return fmt.Errorf("agent card: url must not be empty when no supported interfaces are listed")
	}
	if c.Version == "" {
		return fmt.Errorf("agent card: version must not be empty")
	}
	for i, s := range c.Skills {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("agent card: skill %d: %w", i, err)
		}
	}
	for i, iface := range c.SupportedInterfaces {
		if iface.URL == "" {
			return fmt.Errorf("agent card: supported interface %d: url must not be empty", i)
		}
		if iface.ProtocolBinding == "" {
			return fmt.Errorf("agent card: supported interface %d: protocolBinding must not be empty", i)
		}
	}
	return nil
}

// isCompatibleProtocolVersion reports whether v is a protocol version this
// client can speak: the module's compiled-in default, the fixed "0.3"
// baseline every A2A implementation understands (§4.8), or an empty
// (unspecified) version.
func isCompatibleProtocolVersion(v string) bool {
	return v == "" || v == ProtocolVersion || v == "0.3"
}

// SelectInterface picks the endpoint a client should call: the first entry
// of SupportedInterfaces whose ProtocolBinding is JSONRPC and whose
// ProtocolVersion is compatible, falling back to the card's top-level URL
// and ProtocolVersion when SupportedInterfaces has no qualifying entry
// (§4.8).
func (c AgentCard) SelectInterface() (AgentInterface, error) {
	for _, iface := range c.SupportedInterfaces {
		if iface.ProtocolBinding == ProtocolBindingJSONRPC && isCompatibleProtocolVersion(iface.ProtocolVersion) {
			return iface, nil
		}
	}
	if c.URL != "" && isCompatibleProtocolVersion(c.ProtocolVersion) {
		return AgentInterface{URL: c.URL, ProtocolBinding: ProtocolBindingJSONRPC, ProtocolVersion: c.ProtocolVersion}, nil
	}
	return AgentInterface{}, fmt.Errorf("agent card: no JSONRPC interface compatible with protocol version %q", ProtocolVersion)
}
