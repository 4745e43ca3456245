// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"

	"github.com/pdiddy/quizconv/internal/classify"
	"github.com/pdiddy/quizconv/pkg/types"
)

// parseQuestionSection collects the questions that follow a section header.
// It stops, without consuming, at the first line that is neither a question
// nor blank: the next section header, the answer key, or stray text.
func (p *Parser) parseQuestionSection(cur *Cursor, typ types.QuestionType) (types.QuestionSection, error) {
	sec := types.QuestionSection{Type: typ}
	start := cur.Number()

loop:
	for !cur.Done() {
		line := cur.Line()
		switch {
		// Numbered headers ("2. Essay Questions") also look like questions.
		case classify.IsAnswerKeyHeader(line), classify.IsSectionHeader(line, p.labels):
			break loop
		case classify.IsQuestion(line):
			q, err := p.parseQuestion(cur, typ)
			if err != nil {
				return sec, err
			}
			sec.Set(q)
		case classify.IsBlank(line):
			cur.Advance()
		default:
			break loop
		}
	}

	if len(sec.Questions) == 0 {
		return sec, &Error{Kind: ErrEmptySection, Line: start, Section: string(typ)}
	}
	return sec, nil
}

// parseQuestion consumes a question line, its continuation lines and its
// answer choices.
func (p *Parser) parseQuestion(cur *Cursor, typ types.QuestionType) (types.Question, error) {
	line := cur.Line()
	number, text, ok := classify.QuestionParts(line)
	if !ok {
		return types.Question{}, &Error{Kind: ErrMalformedQuestion, Line: cur.Number(), Text: line, Section: string(typ)}
	}

	q := types.Question{
		Number: number,
		Text:   p.continuation(cur, text),
	}
	p.parseAnswers(cur, &q)
	return q, nil
}

// parseAnswers collects answer choices until a line that is neither an
// answer choice nor blank.
func (p *Parser) parseAnswers(cur *Cursor, q *types.Question) {
	for !cur.Done() {
		line := cur.Line()
		switch {
		case classify.IsAnswerChoice(line):
			letter, text, _ := classify.AnswerParts(line)
			q.SetAnswer(types.Answer{Letter: letter, Text: p.continuation(cur, text)})
		case classify.IsBlank(line):
			cur.Advance()
		default:
			return
		}
	}
}

// continuation consumes the current line and every following line that
// continues it, returning first joined with the trimmed continuation lines
// by single spaces. Blank lines are consumed but add nothing. The first
// stopping line is left for the caller.
func (p *Parser) continuation(cur *Cursor, first string) string {
	var parts []string
	if first != "" {
		parts = append(parts, first)
	}
	for cur.Advance() {
		line := cur.Line()
		if p.endsContinuation(line) {
			break
		}
		if t := strings.TrimSpace(line); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (p *Parser) endsContinuation(line string) bool {
	return classify.IsAnswerChoice(line) ||
		classify.IsSectionHeader(line, p.labels) ||
		classify.IsQuestion(line) ||
		classify.IsAnswerKeyHeader(line)
}

// parseAnswerKeySection records "N. token" lines until the next section
// header. Lines that are not numbered are skipped.
func (p *Parser) parseAnswerKeySection(cur *Cursor, typ types.QuestionType) (types.AnswerKeySection, error) {
	sec := types.AnswerKeySection{Type: typ}
	start := cur.Number()

	for ; !cur.Done(); cur.Advance() {
		line := cur.Line()
		if classify.IsSectionHeader(line, p.labels) {
			break
		}
		if !classify.IsQuestion(line) {
			continue
		}
		number, token, ok := classify.AnswerKeyParts(line)
		if !ok {
			return sec, &Error{Kind: ErrMalformedAnswerKeyLine, Line: cur.Number(), Text: line, Section: string(typ)}
		}
		sec.Set(types.AnswerKeyEntry{Number: number, Token: token})
	}

	if len(sec.Entries) == 0 {
		return sec, &Error{Kind: ErrEmptySection, Line: start, Section: string(typ) + " answer key"}
	}
	return sec, nil
}
