// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// Export is the on-disk form of the history log.
type Export struct {
	Runs        []Run   `json:"runs" yaml:"runs"`
	Conversions []Entry `json:"conversions" yaml:"conversions"`
}

// ExportYAML writes the history log, filtered by opts, to path.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	exp, err := s.export(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(exp)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the history log, filtered by opts, to path.
func (s *Store) ExportJSON(ctx context.Context, path string, opts QueryOptions) error {
	exp, err := s.export(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (*Export, error) {
	if opts.Limit <= 0 {
		opts.Limit = exportLimit
	}
	entries, err := s.Recent(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	runs, err := s.queryRuns(ctx, opts.RunID, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return &Export{Runs: runs, Conversions: entries}, nil
}
