// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives transcript-to-import-file conversion: it discovers
// .txt transcripts, prepares the output directory, converts each file in
// turn and reports per-file status.
package convert

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/quizconv/internal/importfile"
	"github.com/pdiddy/quizconv/internal/parse"
	"github.com/pdiddy/quizconv/pkg/types"
)

// ErrDuplicateOutput is returned when two transcripts in one batch share a
// base name and would write the same import file.
var ErrDuplicateOutput = errors.New("output file already written in this batch")

// Converter converts transcripts into import files under one output
// directory.
type Converter struct {
	parser    *parse.Parser
	outputDir string
	log       zerolog.Logger
	now       func() time.Time
}

// New returns a Converter for cfg. Diagnostics go to logger.
func New(cfg types.ConvertConfig, logger zerolog.Logger) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid convert config: %w", err)
	}
	return &Converter{
		parser:    parse.New(cfg.Labels()),
		outputDir: cfg.OutputDir,
		log:       logger,
		now:       time.Now,
	}, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted   int
	Skipped     int
	Failed      int
	Conversions []types.Conversion
}

// Total returns the total number of transcripts processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any transcript failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile converts the transcript at src into an import file with the
// same base name in the output directory. Empty transcripts and transcripts
// without question sections are skipped. A failed conversion leaves no
// output file behind.
func (c *Converter) ConvertFile(src string, w io.Writer) types.Conversion {
	conv := types.Conversion{SourcePath: src, ConvertedAt: c.now().UTC()}
	name := filepath.Base(src)

	fail := func(err error) types.Conversion {
		fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
		c.log.Error().Err(err).Str("file", src).Msg("conversion failed")
		conv.Status = types.ConversionFailed
		conv.Error = err.Error()
		return conv
	}
	skip := func(reason string) types.Conversion {
		fmt.Fprintf(w, "skipped:   %s (%s)\n", name, reason)
		conv.Status = types.ConversionSkipped
		return conv
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fail(fmt.Errorf("reading transcript: %w", err))
	}
	sum := sha256.Sum256(data)
	conv.SHA256 = hex.EncodeToString(sum[:])

	if len(data) == 0 {
		return skip("empty file")
	}

	doc, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return fail(err)
	}
	conv.Sections = len(doc.Sections)
	conv.Questions = doc.QuestionCount()
	if conv.Sections == 0 {
		return skip("no question sections")
	}

	out, stats, err := importfile.Marshal(doc)
	if err != nil {
		return fail(err)
	}

	dst := filepath.Join(c.outputDir, name)
	if err := writeAtomic(dst, out); err != nil {
		return fail(err)
	}
	conv.OutputPath = dst
	conv.Unmatched = stats.Unmatched

	for _, q := range stats.Unmatched {
		c.log.Warn().Str("file", src).Str("question", q).
			Msg("answer key token matches no choice; all choices marked incorrect")
	}

	fmt.Fprintf(w, "converted: %s (%d questions)\n", name, stats.Records)
	c.log.Debug().Str("file", src).Str("output", dst).Int("questions", stats.Records).Msg("converted")
	conv.Status = types.ConversionDone
	return conv
}

// ConvertBatch converts each transcript in order, printing per-file status
// to w and returning a summary. The context is checked between files.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string, w io.Writer) (BatchResult, error) {
	var result BatchResult
	written := make(map[string]string)

	for _, p := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var conv types.Conversion
		name := filepath.Base(p)
		if first, ok := written[name]; ok {
			err := fmt.Errorf("%w: %s (from %s)", ErrDuplicateOutput, name, first)
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			c.log.Error().Err(err).Str("file", p).Msg("conversion failed")
			conv = types.Conversion{
				SourcePath:  p,
				Status:      types.ConversionFailed,
				Error:       err.Error(),
				ConvertedAt: c.now().UTC(),
			}
		} else {
			conv = c.ConvertFile(p, w)
			if conv.Status == types.ConversionDone {
				written[name] = p
			}
		}

		switch conv.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
		result.Conversions = append(result.Conversions, conv)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// Run discovers transcripts under cfg.InputDir, prepares cfg.OutputDir and
// converts every transcript found. An output directory equal to the input
// directory is rejected before anything is cleaned.
func Run(ctx context.Context, cfg types.ConvertConfig, logger zerolog.Logger, w io.Writer) (BatchResult, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return BatchResult{}, err
	}
	if err := CheckOutputDir(cfg.OutputDir, cfg.InputDir); err != nil {
		return BatchResult{}, err
	}
	paths, err := Discover(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return BatchResult{}, err
	}
	if err := PrepareOutputDir(cfg.OutputDir, cfg.Clean); err != nil {
		return BatchResult{}, err
	}
	logger.Info().Str("input_dir", cfg.InputDir).Int("files", len(paths)).Msg("starting batch")
	return c.ConvertBatch(ctx, paths, w)
}

// RunFiles converts the named transcripts instead of discovering them.
// The output directory must not hold any of them.
func RunFiles(ctx context.Context, cfg types.ConvertConfig, logger zerolog.Logger, paths []string, w io.Writer) (BatchResult, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return BatchResult{}, err
	}
	dirs := make([]string, len(paths))
	for i, p := range paths {
		dirs[i] = filepath.Dir(p)
	}
	if err := CheckOutputDir(cfg.OutputDir, dirs...); err != nil {
		return BatchResult{}, err
	}
	if err := PrepareOutputDir(cfg.OutputDir, cfg.Clean); err != nil {
		return BatchResult{}, err
	}
	logger.Info().Int("files", len(paths)).Msg("starting batch")
	return c.ConvertBatch(ctx, paths, w)
}

// writeAtomic writes data to a temporary file next to dst and renames it
// into place, so readers never observe a partial import file.
func writeAtomic(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".quizconv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", dst, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("committing %s: %w", dst, err)
	}
	return nil
}
