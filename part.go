// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// PartKind is the "kind" discriminator of a [Part] tagged union (§3, §4.1).
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindFile PartKind = "file"
	PartKindData PartKind = "data"
)

// Part is a tagged union on the "kind" field: a message or artifact is
// composed of an ordered sequence of Parts, each either text, file, or
// structured data (§3).
type Part interface {
	Kind() PartKind
	Validate() error
}

// TextPart is a plain-text [Part].
type TextPart struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// Kind implements [Part].
func (TextPart) Kind() PartKind { return PartKindText }

// Validate implements [Part].
func (p TextPart) Validate() error {
	if p.Text == "" {
		return fmt.Errorf("text part: text must not be empty")
	}
	return nil
}

// FileContent is a file referenced either by inline base64 bytes or by URI.
// Exactly one of Bytes or URI must be set (§3).
type FileContent struct {
	Name     string `json:"name,omitzero"`
	MIMEType string `json:"mimeType,omitzero"`
	Bytes    []byte `json:"bytes,omitzero"` // base64 on the wire, decoded here
	URI      string `json:"uri,omitzero"`
}

// Validate ensures exactly one of Bytes or URI is present.
func (f FileContent) Validate() error {
	hasBytes := len(f.Bytes) > 0
	hasURI := f.URI != ""
	if hasBytes == hasURI {
		return fmt.Errorf("file content: exactly one of bytes or uri must be set")
	}
	return nil
}

// FilePart is a file [Part].
type FilePart struct {
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// Kind implements [Part].
func (FilePart) Kind() PartKind { return PartKindFile }

// Validate implements [Part].
func (p FilePart) Validate() error {
	return p.File.Validate()
}

// DataPart carries a structured JSON value as a [Part].
type DataPart struct {
	Data     any            `json:"data"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// Kind implements [Part].
func (DataPart) Kind() PartKind { return PartKindData }

// Validate implements [Part].
func (p DataPart) Validate() error {
	if p.Data == nil {
		return fmt.Errorf("data part: data must not be nil")
	}
	return nil
}

// wirePart is the on-the-wire shape of a Part: every variant's fields
// flattened alongside the "kind" discriminator, following the teacher's
// PartWrapper pattern of peeking the discriminator before committing to a
// concrete type.
type wirePart struct {
	Kind     PartKind       `json:"kind"`
	Text     string         `json:"text,omitzero"`
	File     *FileContent   `json:"file,omitzero"`
	Data     any            `json:"data,omitzero"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// MarshalPartJSON encodes p in its tagged-union wire shape.
func MarshalPartJSON(p Part) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("cannot marshal nil part")
	}
	w := wirePart{Kind: p.Kind()}
	switch v := p.(type) {
	case TextPart:
		w.Text = v.Text
		w.Metadata = v.Metadata
	case *TextPart:
		w.Text = v.Text
		w.Metadata = v.Metadata
	case FilePart:
		w.File = &v.File
		w.Metadata = v.Metadata
	case *FilePart:
		w.File = &v.File
		w.Metadata = v.Metadata
	case DataPart:
		w.Data = v.Data
		w.Metadata = v.Metadata
	case *DataPart:
		w.Data = v.Data
		w.Metadata = v.Metadata
	default:
		return nil, fmt.Errorf("unknown part type %T", p)
	}
	return json.Marshal(w)
}

// UnmarshalPartJSON decodes data into the concrete Part variant its "kind"
// field selects. An unrecognized kind is a parse error (§4.1).
func UnmarshalPartJSON(data []byte) (Part, error) {
	var w wirePart
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode part: %w", err)
	}
	switch w.Kind {
	case PartKindText:
		return TextPart{Text: w.Text, Metadata: w.Metadata}, nil
	case PartKindFile:
		if w.File == nil {
			return nil, fmt.Errorf("file part: missing file field")
		}
		return FilePart{File: *w.File, Metadata: w.Metadata}, nil
	case PartKindData:
		return DataPart{Data: w.Data, Metadata: w.Metadata}, nil
	default:
		return nil, fmt.Errorf("%w: unknown part kind %q", ErrParse, w.Kind)
	}
}

// PartValue is a JSON-serializable box around a [Part], used wherever the
// spec needs "an ordered sequence of Part" as a concrete field type.
type PartValue struct {
	Part Part
}

// MarshalJSON implements [json.Marshaler].
func (v PartValue) MarshalJSON() ([]byte, error) {
	return MarshalPartJSON(v.Part)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *PartValue) UnmarshalJSON(data []byte) error {
	p, err := UnmarshalPartJSON(data)
	if err != nil {
		return err
	}
	v.Part = p
	return nil
}

// Validate validates the wrapped part.
func (v PartValue) Validate() error {
	if v.Part == nil {
		return fmt.Errorf("part must not be nil")
	}
	return v.Part.Validate()
}
