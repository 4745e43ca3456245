// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importfile writes parsed quiz documents in the tab-delimited
// import format: one record per question,
//
//	TYPE <tab> question [<tab> choice <tab> correct|incorrect]...
//
// or, for questions without answer choices,
//
//	TYPE <tab> question <tab> key-token
//
// All question, choice and token text is entity-escaped.
package importfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/quizconv/pkg/types"
)

const (
	Correct   = "correct"
	Incorrect = "incorrect"
)

// ErrMissingQuestionText is returned for a question whose text is empty.
var ErrMissingQuestionText = errors.New("no question text found")

var (
	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	unescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#039;", "'",
		"&amp;", "&",
	)
)

// Escape converts the markup-significant characters of s to HTML entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Stats summarizes what Write emitted.
type Stats struct {
	Records int

	// Unmatched lists "TYPE/number" for choice questions where no choice
	// letter matched the key token, so every choice was marked incorrect.
	Unmatched []string
}

// Write emits one record per question of doc, in section then source order.
// Key tokens are looked up by section type and question number; a missing
// token marks every choice incorrect.
func Write(w io.Writer, doc *types.Document) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)

	for _, sec := range doc.Sections {
		for _, q := range sec.Questions {
			token, _ := doc.AnswerKey.Token(sec.Type, q.Number)
			matched, err := writeQuestion(bw, sec.Type, q, token)
			if err != nil {
				return stats, err
			}
			if len(q.Answers) > 0 && !matched {
				stats.Unmatched = append(stats.Unmatched, string(sec.Type)+"/"+q.Number)
			}
			stats.Records++
		}
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("writing import records: %w", err)
	}
	return stats, nil
}

// Marshal returns the full import file for doc.
func Marshal(doc *types.Document) ([]byte, Stats, error) {
	var buf bytes.Buffer
	stats, err := Write(&buf, doc)
	if err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

// writeQuestion writes one record and reports whether any choice matched
// the key token.
func writeQuestion(w *bufio.Writer, typ types.QuestionType, q types.Question, token string) (bool, error) {
	if q.Text == "" {
		return false, fmt.Errorf("%s question %q: %w", typ, q.Number, ErrMissingQuestionText)
	}

	w.WriteString(string(typ))
	w.WriteByte('\t')
	w.WriteString(Escape(q.Text))

	if len(q.Answers) == 0 {
		w.WriteByte('\t')
		w.WriteString(Escape(token))
		w.WriteByte('\n')
		return false, nil
	}

	matched := false
	for _, a := range q.Answers {
		w.WriteByte('\t')
		w.WriteString(Escape(a.Text))
		w.WriteByte('\t')
		if isCorrect(a.Letter, token) {
			matched = true
			w.WriteString(Correct)
		} else {
			w.WriteString(Incorrect)
		}
	}
	w.WriteByte('\n')
	return matched, nil
}

func isCorrect(letter, token string) bool {
	return token != "" && strings.EqualFold(letter, token)
}
