//go:build mage

// Package main contains Mage build targets for quizconv developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"

	"github.com/pdiddy/quizconv/internal/convert"
	"github.com/pdiddy/quizconv/internal/parse"
)

// projectDirs lists the working directories a conversion run expects.
var projectDirs = []string{
	"transcripts",
	"output",
}

// Init creates the project directory structure for conversion runs.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "quizconv"
	cmdPkg  = "./cmd/quizconv"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints project metrics: Go production/test LOC and the transcripts
// under transcripts/ with their section and question counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	if _, err := os.Stat(transcriptDir); os.IsNotExist(err) {
		fmt.Printf("No %s/ directory; run mage init.\n", transcriptDir)
		return nil
	}
	ts, err := countTranscripts(transcriptDir)
	if err != nil {
		return err
	}
	fmt.Printf("Transcripts:                    %d (%d unparseable)\n", ts.files, ts.failed)
	fmt.Printf("Question sections:              %d\n", ts.sections)
	fmt.Printf("Questions:                      %d\n", ts.questions)
	return nil
}

const transcriptDir = "transcripts"

type transcriptStats struct {
	files, failed, sections, questions int
}

// countTranscripts parses every transcript under dir with the default labels.
func countTranscripts(dir string) (transcriptStats, error) {
	var ts transcriptStats
	paths, err := convert.Discover(dir, filepath.Join(dir, "output"))
	if err != nil {
		return ts, err
	}
	for _, path := range paths {
		ts.files++
		f, err := os.Open(path)
		if err != nil {
			return ts, fmt.Errorf("opening %s: %w", path, err)
		}
		doc, err := parse.Parse(f)
		f.Close()
		if err != nil {
			ts.failed++
			continue
		}
		ts.sections += len(doc.Sections)
		ts.questions += doc.QuestionCount()
	}
	return ts, nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if testOnly != strings.HasSuffix(path, "_test.go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				total++
			}
		}
		return nil
	})
	return total, err
}
