//go:build mage

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCountTranscripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bio.txt"), "Multiple-Choice Questions\n1. Q?\na) x\nb) y\n2. R?\na) z\n")
	writeFile(t, filepath.Join(dir, "nested", "essay.txt"), "Essay Questions\n1. Explain.\n")
	writeFile(t, filepath.Join(dir, "broken.txt"), "Essay Questions\nnot a question\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "ignored")

	ts, err := countTranscripts(dir)
	require.NoError(t, err)
	assert.Equal(t, transcriptStats{files: 3, failed: 1, sections: 2, questions: 3}, ts)
}

func TestCountGoLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n\n  \nfunc A() {}\n")
	writeFile(t, filepath.Join(dir, "a_test.go"), "package a\n")
	writeFile(t, filepath.Join(dir, "_skip", "b.go"), "package b\n")

	prod, err := countGoLines(dir, false)
	require.NoError(t, err)
	assert.Equal(t, 2, prod)

	tests, err := countGoLines(dir, true)
	require.NoError(t, err)
	assert.Equal(t, 1, tests)
}
