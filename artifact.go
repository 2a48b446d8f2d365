// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "fmt"

// Artifact is a durable output produced by an agent while working a task
// (§3). Artifacts are appended to a [Task]'s Artifacts slice by a task
// updater and streamed to subscribers as artifact-update events.
type Artifact struct {
	ArtifactID  string         `json:"artifactId"`
	Name        string         `json:"name,omitzero"`
	Description string         `json:"description,omitzero"`
	Parts       []PartValue    `json:"parts"`
	Metadata    map[string]any `json:"metadata,omitzero"`
	Index       int            `json:"index,omitzero"` // ordering hint among a task's artifacts
}

// Validate checks the required fields of an Artifact.
func (a Artifact) Validate() error {
	if a.ArtifactID == "" {
		return fmt.Errorf("artifact: artifactId must not be empty")
	}
	if len(a.Parts) == 0 {
		return fmt.Errorf("artifact: parts must not be empty")
	}
	for i, p := range a.Parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("artifact: part %d: %w", i, err)
		}
	}
	return nil
}

// NewTextArtifact builds a single-text-part Artifact.
func NewTextArtifact(name, text string) Artifact {
	return Artifact{
		ArtifactID: NewArtifactID(),
		Name:       name,
		Parts:      []PartValue{{Part: TextPart{Text: text}}},
	}
}

// AppendArtifactToTask appends art to t.Artifacts, or, if append is true
// and an artifact with the same ArtifactID already exists, extends that
// artifact's Parts instead of adding a new entry (§4.4 add_artifact).
func AppendArtifactToTask(t *Task, art Artifact, appendParts bool) {
	if appendParts {
		for i := range t.Artifacts {
			if t.Artifacts[i].ArtifactID == art.ArtifactID {
				t.Artifacts[i].Parts = append(t.Artifacts[i].Parts, art.Parts...)
				return
			}
		}
	}
	t.Artifacts = append(t.Artifacts, art)
}
