// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConvertConfig holds settings for a conversion batch.
type ConvertConfig struct {
	// InputDir is searched recursively for .txt transcripts.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives one import file per transcript. It is excluded from
	// discovery.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Clean removes existing files from OutputDir before the batch starts.
	Clean bool `json:"clean" yaml:"clean" mapstructure:"clean"`

	// SectionLabels are appended to the built-in label table.
	SectionLabels []SectionLabel `json:"section_labels,omitempty" yaml:"section_labels,omitempty" mapstructure:"section_labels"`
}

// Labels returns the built-in labels followed by the configured extras.
func (c ConvertConfig) Labels() LabelSet {
	labels := DefaultLabels()
	return append(labels, c.SectionLabels...)
}

// Validate reports configuration errors that would make a batch meaningless.
func (c ConvertConfig) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must be set")
	}
	for i, l := range c.SectionLabels {
		if l.Type == "" {
			return fmt.Errorf("section_labels[%d]: code must not be empty", i)
		}
		if l.Phrase == "" {
			return fmt.Errorf("section_labels[%d] (%s): phrase must not be empty", i, l.Type)
		}
	}
	return nil
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled controls whether batch outcomes are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file (default .quizconv/history.db).
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings read from quizconv.yaml.
type Config struct {
	Convert  ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	History  HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	LogLevel string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
