// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QuestionType is the short code that identifies a quiz section's question
// format (e.g. "MC"). The built-in codes form a closed set; configuration may
// register additional codes through SectionLabel entries.
type QuestionType string

const (
	MultipleChoice QuestionType = "MC"
	TrueFalse      QuestionType = "TF"
	Essay          QuestionType = "ESS"
)

// SectionLabel maps a question type to the literal phrase searched for in
// section header lines.
type SectionLabel struct {
	Type   QuestionType `json:"code" yaml:"code" mapstructure:"code"`
	Phrase string       `json:"phrase" yaml:"phrase" mapstructure:"phrase"`
}

// LabelSet is an ordered table of section labels. When several phrases
// occur in one line the first entry wins.
type LabelSet []SectionLabel

// DefaultLabels returns the built-in label table.
func DefaultLabels() LabelSet {
	return LabelSet{
		{Type: MultipleChoice, Phrase: "Multiple-Choice Questions"},
		{Type: TrueFalse, Phrase: "True or False Questions"},
		{Type: Essay, Phrase: "Essay Questions"},
	}
}

// Label returns the first phrase registered for t.
func (s LabelSet) Label(t QuestionType) (string, bool) {
	for _, l := range s {
		if l.Type == t {
			return l.Phrase, true
		}
	}
	return "", false
}

// Answer is one lettered answer choice.
type Answer struct {
	Letter string `json:"letter" yaml:"letter"`
	Text   string `json:"text" yaml:"text"`
}

// Question is one numbered question with its answer choices in source order.
// Number is the literal digit token from the source line and may be empty.
type Question struct {
	Number  string   `json:"number" yaml:"number"`
	Text    string   `json:"text" yaml:"text"`
	Answers []Answer `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// SetAnswer records an answer choice. A repeated letter replaces the earlier
// text and keeps its position.
func (q *Question) SetAnswer(a Answer) {
	for i := range q.Answers {
		if q.Answers[i].Letter == a.Letter {
			q.Answers[i].Text = a.Text
			return
		}
	}
	q.Answers = append(q.Answers, a)
}

// QuestionSection holds the questions of one question type in source order.
type QuestionSection struct {
	Type      QuestionType `json:"type" yaml:"type"`
	Questions []Question   `json:"questions" yaml:"questions"`
}

// Set records a question. A repeated number replaces the earlier question
// and keeps its position.
func (s *QuestionSection) Set(q Question) {
	for i := range s.Questions {
		if s.Questions[i].Number == q.Number {
			s.Questions[i] = q
			return
		}
	}
	s.Questions = append(s.Questions, q)
}

// AnswerKeyEntry is the correct-answer token for one question number.
type AnswerKeyEntry struct {
	Number string `json:"number" yaml:"number"`
	Token  string `json:"token" yaml:"token"`
}

// AnswerKeySection holds the key entries of one question type.
type AnswerKeySection struct {
	Type    QuestionType     `json:"type" yaml:"type"`
	Entries []AnswerKeyEntry `json:"entries" yaml:"entries"`
}

// Set records a key entry, replacing an earlier entry with the same number.
func (s *AnswerKeySection) Set(e AnswerKeyEntry) {
	for i := range s.Entries {
		if s.Entries[i].Number == e.Number {
			s.Entries[i] = e
			return
		}
	}
	s.Entries = append(s.Entries, e)
}

// Token returns the key token recorded for number.
func (s AnswerKeySection) Token(number string) (string, bool) {
	for _, e := range s.Entries {
		if e.Number == number {
			return e.Token, true
		}
	}
	return "", false
}

// AnswerKey is the trailing answer key of a document, grouped by type.
type AnswerKey []AnswerKeySection

// Token looks up the key token for a question by type, then number.
func (k AnswerKey) Token(t QuestionType, number string) (string, bool) {
	for _, s := range k {
		if s.Type == t {
			return s.Token(number)
		}
	}
	return "", false
}

// Document is the parsed form of one quiz transcript.
type Document struct {
	Sections  []QuestionSection `json:"sections" yaml:"sections"`
	AnswerKey AnswerKey         `json:"answer_key,omitempty" yaml:"answer_key,omitempty"`
}

// SetSection stores a question section, replacing an earlier section of the
// same type in place.
func (d *Document) SetSection(s QuestionSection) {
	for i := range d.Sections {
		if d.Sections[i].Type == s.Type {
			d.Sections[i] = s
			return
		}
	}
	d.Sections = append(d.Sections, s)
}

// SetKeySection stores an answer-key section, replacing an earlier section
// of the same type in place.
func (d *Document) SetKeySection(s AnswerKeySection) {
	for i := range d.AnswerKey {
		if d.AnswerKey[i].Type == s.Type {
			d.AnswerKey[i] = s
			return
		}
	}
	d.AnswerKey = append(d.AnswerKey, s)
}

// QuestionCount returns the number of questions across all sections.
func (d *Document) QuestionCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Questions)
	}
	return n
}
