// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the wire protocol types for the Agent-to-Agent (A2A)
// protocol: the task state machine, the message/part/artifact data model,
// the AgentCard discovery document, and the JSON-RPC 2.0 envelope and error
// taxonomy shared by the server and client packages.
//
// All types serialize to and from JSON using camelCase field names via
// [github.com/go-json-experiment/json]. Tagged unions ([Part] and
// [StreamResponse]) are discriminated by a "kind" field at the JSON level;
// unknown fields are ignored on decode, unknown "kind" values fail decoding.
package a2a
