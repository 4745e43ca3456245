// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySection is returned when a question or answer-key section
	// closes without a single entry.
	ErrEmptySection = errors.New("empty section")

	// ErrMalformedQuestion is returned when a line handed to question
	// collection does not have the "N. text" form.
	ErrMalformedQuestion = errors.New("malformed question")

	// ErrMalformedAnswerKeyLine is returned when an answer-key line does not
	// yield a number and token.
	ErrMalformedAnswerKeyLine = errors.New("malformed answer key line")
)

// Error locates a parse failure in the transcript. Kind is one of the
// sentinel errors above and is matched by errors.Is.
type Error struct {
	Kind    error
	Line    int
	Text    string
	Section string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("line %d: %v", e.Line, e.Kind)
	if e.Section != "" {
		msg += " in " + e.Section + " section"
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}
