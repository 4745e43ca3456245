// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns a plain-text quiz transcript into a types.Document in
// a single forward pass over its lines.
package parse

import (
	"io"

	"github.com/pdiddy/quizconv/internal/classify"
	"github.com/pdiddy/quizconv/pkg/types"
)

// Parser recognizes question sections and the answer key using a table of
// section labels.
type Parser struct {
	labels types.LabelSet
}

// New returns a parser for the given labels. A nil or empty table selects
// types.DefaultLabels.
func New(labels types.LabelSet) *Parser {
	if len(labels) == 0 {
		labels = types.DefaultLabels()
	}
	return &Parser{labels: labels}
}

// Parse reads a whole transcript with the default labels.
func Parse(r io.Reader) (*types.Document, error) {
	return New(nil).Parse(r)
}

// Parse reads a whole transcript from r.
func (p *Parser) Parse(r io.Reader) (*types.Document, error) {
	return p.ParseCursor(NewCursor(r))
}

// ParseCursor walks cur to the end of input. Text before the first section
// header is ignored. A document without question sections is valid.
func (p *Parser) ParseCursor(cur *Cursor) (*types.Document, error) {
	doc := &types.Document{}

	for !cur.Done() {
		line := cur.Line()

		if classify.IsAnswerKeyHeader(line) {
			if err := p.parseAnswerKey(cur, doc); err != nil {
				return nil, readErrOr(cur, err)
			}
			break
		}

		if typ, ok := classify.SectionType(line, p.labels); ok {
			if !cur.Advance() {
				break
			}
			sec, err := p.parseQuestionSection(cur, typ)
			if err != nil {
				return nil, readErrOr(cur, err)
			}
			doc.SetSection(sec)
			continue
		}

		cur.Advance()
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseAnswerKey reads answer-key sections, each opened by a section
// header, until the end of input.
func (p *Parser) parseAnswerKey(cur *Cursor, doc *types.Document) error {
	for !cur.Done() {
		typ, ok := classify.SectionType(cur.Line(), p.labels)
		if !ok {
			cur.Advance()
			continue
		}
		if !cur.Advance() {
			return nil
		}
		sec, err := p.parseAnswerKeySection(cur, typ)
		if err != nil {
			return err
		}
		doc.SetKeySection(sec)
	}
	return nil
}

// readErrOr prefers a read failure over the parse error it caused.
func readErrOr(cur *Cursor, err error) error {
	if rerr := cur.Err(); rerr != nil {
		return rerr
	}
	return err
}
