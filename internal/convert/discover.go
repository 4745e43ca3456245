// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const transcriptExt = ".txt"

// ErrOutputOverlapsInput is returned when the output directory is a
// directory that holds input transcripts. Cleaning it or writing import
// files into it would destroy the transcripts.
var ErrOutputOverlapsInput = errors.New("output directory holds input transcripts")

// CheckOutputDir rejects outputDir when it resolves to any of inputDirs.
func CheckOutputDir(outputDir string, inputDirs ...string) error {
	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	for _, dir := range inputDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", dir, err)
		}
		if abs == outAbs {
			return fmt.Errorf("%w: %s", ErrOutputOverlapsInput, outputDir)
		}
	}
	return nil
}

// Discover walks inputDir recursively and returns every .txt file in
// lexical order. The output directory and hidden directories are not
// descended into.
func Discover(inputDir, outputDir string) ([]string, error) {
	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && abs == outAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), transcriptExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering transcripts in %s: %w", inputDir, err)
	}
	return paths, nil
}

// PrepareOutputDir creates dir if needed. With clean set, regular files
// already in dir are removed; subdirectories are left alone.
func PrepareOutputDir(dir string, clean bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	if !clean {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading output directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("cleaning output directory: %w", err)
		}
	}
	return nil
}
