// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides what kind of logical line a transcript line is
// and extracts its payload. Every function is pure: a line can be classified
// any number of times without being consumed.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/quizconv/pkg/types"
)

// AnswerKeyMarker opens the trailing answer key of a transcript.
const AnswerKeyMarker = "ANSWER KEY"

var (
	questionRe  = regexp.MustCompile(`^\s*([0-9]*)\.\s(.*)$`)
	answerRe    = regexp.MustCompile(`^\s*([a-z])\)\s(.*)$`)
	answerKeyRe = regexp.MustCompile(`^\s*([0-9]*)\.\s*([0-9a-zA-Z]*)`)
)

// Kind is the classification of a single line.
type Kind int

const (
	KindText Kind = iota
	KindBlank
	KindAnswerKeyHeader
	KindSectionHeader
	KindQuestion
	KindAnswer
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindAnswerKeyHeader:
		return "answer-key"
	case KindSectionHeader:
		return "section"
	case KindQuestion:
		return "question"
	case KindAnswer:
		return "answer"
	default:
		return "text"
	}
}

// Classify returns the first matching kind in parser precedence order:
// answer-key header, section header, question, answer, blank, text.
func Classify(line string, labels types.LabelSet) Kind {
	switch {
	case IsAnswerKeyHeader(line):
		return KindAnswerKeyHeader
	case IsSectionHeader(line, labels):
		return KindSectionHeader
	case IsQuestion(line):
		return KindQuestion
	case IsAnswerChoice(line):
		return KindAnswer
	case IsBlank(line):
		return KindBlank
	default:
		return KindText
	}
}

// SectionType returns the type whose label phrase occurs anywhere in line.
func SectionType(line string, labels types.LabelSet) (types.QuestionType, bool) {
	for _, l := range labels {
		if l.Phrase != "" && strings.Contains(line, l.Phrase) {
			return l.Type, true
		}
	}
	return "", false
}

// IsSectionHeader reports whether line announces a question section.
func IsSectionHeader(line string, labels types.LabelSet) bool {
	_, ok := SectionType(line, labels)
	return ok
}

// IsAnswerKeyHeader reports whether line contains the answer-key marker.
func IsAnswerKeyHeader(line string) bool {
	return strings.Contains(line, AnswerKeyMarker)
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsQuestion reports whether line has the form "12. text".
func IsQuestion(line string) bool {
	return questionRe.MatchString(line)
}

// QuestionParts extracts the number and trimmed text of a question line.
// The number is empty when the source omits it.
func QuestionParts(line string) (number, text string, ok bool) {
	m := questionRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// IsAnswerChoice reports whether line has the form "a) text".
func IsAnswerChoice(line string) bool {
	return answerRe.MatchString(line)
}

// AnswerParts extracts the letter and trimmed text of an answer line.
func AnswerParts(line string) (letter, text string, ok bool) {
	m := answerRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// AnswerKeyParts extracts the question number and alphanumeric token of an
// answer-key line such as "3. b" or "4.True". The token is empty when the
// line carries no alphanumeric answer.
func AnswerKeyParts(line string) (number, token string, ok bool) {
	m := answerKeyRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
