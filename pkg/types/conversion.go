// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one transcript.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Conversion records the outcome of converting one transcript.
type Conversion struct {
	// SourcePath is the transcript that was read.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the import file written; empty unless Status is converted.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`

	Sections  int `json:"sections" yaml:"sections"`
	Questions int `json:"questions" yaml:"questions"`

	// Unmatched lists "TYPE/number" for choice questions whose key token
	// matched no answer letter.
	Unmatched []string `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`

	// SHA256 is the hex digest of the transcript contents.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
