// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importfile

import (
	"fmt"
	"strings"

	"github.com/pdiddy/quizconv/pkg/types"
)

// Choice is one answer choice of a parsed record.
type Choice struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// Record is one import line split back into its fields, with entities
// decoded.
type Record struct {
	Type    types.QuestionType `json:"type" yaml:"type"`
	Text    string             `json:"text" yaml:"text"`
	Choices []Choice           `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Key is set for records without choices.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// ParseRecord splits one import line. The trailing newline is optional.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(strings.TrimSuffix(line, "\n"), "\t")
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("record has %d fields, want at least 3", len(fields))
	}

	r := Record{
		Type: types.QuestionType(fields[0]),
		Text: Unescape(fields[1]),
	}
	rest := fields[2:]
	if len(rest) == 1 {
		r.Key = Unescape(rest[0])
		return r, nil
	}
	if len(rest)%2 != 0 {
		return Record{}, fmt.Errorf("record has unpaired choice field")
	}
	for i := 0; i < len(rest); i += 2 {
		var correct bool
		switch rest[i+1] {
		case Correct:
			correct = true
		case Incorrect:
		default:
			return Record{}, fmt.Errorf("choice %d: unknown correctness %q", i/2+1, rest[i+1])
		}
		r.Choices = append(r.Choices, Choice{Text: Unescape(rest[i]), Correct: correct})
	}
	return r, nil
}

// ParseAll splits a whole import file into records.
func ParseAll(data string) ([]Record, error) {
	var records []Record
	for i, line := range strings.SplitAfter(data, "\n") {
		if line == "" {
			continue
		}
		r, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}
