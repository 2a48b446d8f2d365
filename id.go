// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "github.com/google/uuid"

// NewTaskID generates a fresh task identifier.
func NewTaskID() string { return uuid.NewString() }

// NewContextID generates a fresh context identifier.
func NewContextID() string { return uuid.NewString() }

// NewMessageID generates a fresh message identifier.
func NewMessageID() string { return uuid.NewString() }

// NewArtifactID generates a fresh artifact identifier.
func NewArtifactID() string { return uuid.NewString() }
