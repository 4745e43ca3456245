// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quizconv/internal/history"
	"github.com/pdiddy/quizconv/internal/parse"
	"github.com/pdiddy/quizconv/pkg/types"
)

func TestNewLogger(t *testing.T) {
	l, err := newLogger("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l, err = newLogger("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestWriteDocument(t *testing.T) {
	doc, err := parse.Parse(strings.NewReader("Essay Questions\n1. Why?\nANSWER KEY\nEssay Questions\n1. Because\n"))
	require.NoError(t, err)

	var y bytes.Buffer
	require.NoError(t, writeDocument(&y, doc, "yaml"))
	var fromYAML types.Document
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &fromYAML))
	assert.Equal(t, *doc, fromYAML)

	var j bytes.Buffer
	require.NoError(t, writeDocument(&j, doc, "json"))
	var fromJSON types.Document
	require.NoError(t, json.Unmarshal(j.Bytes(), &fromJSON))
	assert.Equal(t, *doc, fromJSON)

	assert.Error(t, writeDocument(&j, doc, "xml"))
}

func TestPrintLineKinds(t *testing.T) {
	var out bytes.Buffer
	cur := parse.NewCursor(strings.NewReader("Essay Questions\n1. Why?\n\nANSWER KEY\n"))
	require.NoError(t, printLineKinds(&out, cur, types.DefaultLabels()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "section")
	assert.Contains(t, lines[1], "question")
	assert.Contains(t, lines[2], "blank")
	assert.Contains(t, lines[3], "answer-key")
}

func TestFormatHistoryOutput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, formatHistoryOutput(&out, nil, false))
	assert.Contains(t, out.String(), "No conversions recorded.")

	entries := []history.Entry{{
		RunID: "r1",
		Conversion: types.Conversion{
			SourcePath:  "transcripts/bio.txt",
			Status:      types.ConversionDone,
			Questions:   7,
			Unmatched:   []string{"MC/2"},
			ConvertedAt: time.Now(),
		},
	}}

	out.Reset()
	require.NoError(t, formatHistoryOutput(&out, entries, false))
	assert.Contains(t, out.String(), "transcripts/bio.txt")
	assert.Contains(t, out.String(), "unmatched key: MC/2")
	assert.Contains(t, out.String(), "1 conversions")

	out.Reset()
	require.NoError(t, formatHistoryOutput(&out, entries, true))
	assert.Contains(t, out.String(), `"run_id": "r1"`)
	assert.Contains(t, out.String(), `"source_path": "transcripts/bio.txt"`)
}
