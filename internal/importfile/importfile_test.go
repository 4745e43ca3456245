// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quizconv/internal/parse"
	"github.com/pdiddy/quizconv/pkg/types"
)

func mcDoc(token string, answers ...types.Answer) *types.Document {
	doc := &types.Document{
		Sections: []types.QuestionSection{{
			Type:      types.MultipleChoice,
			Questions: []types.Question{{Number: "1", Text: "Capital of France?", Answers: answers}},
		}},
	}
	if token != "" {
		doc.AnswerKey = types.AnswerKey{{
			Type:    types.MultipleChoice,
			Entries: []types.AnswerKeyEntry{{Number: "1", Token: token}},
		}}
	}
	return doc
}

func TestWrite_Records(t *testing.T) {
	paris := types.Answer{Letter: "a", Text: "Paris"}
	rome := types.Answer{Letter: "b", Text: "Rome"}

	tests := []struct {
		name          string
		doc           *types.Document
		want          string
		wantUnmatched []string
	}{
		{
			name: "choice matches key token",
			doc:  mcDoc("a", paris, rome),
			want: "MC\tCapital of France?\tParis\tcorrect\tRome\tincorrect\n",
		},
		{
			name: "key token compared case-insensitively",
			doc:  mcDoc("B", paris, rome),
			want: "MC\tCapital of France?\tParis\tincorrect\tRome\tcorrect\n",
		},
		{
			name:          "missing key marks every choice incorrect",
			doc:           mcDoc("", paris, rome),
			want:          "MC\tCapital of France?\tParis\tincorrect\tRome\tincorrect\n",
			wantUnmatched: []string{"MC/1"},
		},
		{
			name:          "key token matching no letter marks every choice incorrect",
			doc:           mcDoc("d", paris, rome),
			want:          "MC\tCapital of France?\tParis\tincorrect\tRome\tincorrect\n",
			wantUnmatched: []string{"MC/1"},
		},
		{
			name: "question without choices emits the raw key token",
			doc: &types.Document{
				Sections: []types.QuestionSection{{
					Type:      types.Essay,
					Questions: []types.Question{{Number: "4", Text: "Pick one."}},
				}},
				AnswerKey: types.AnswerKey{{
					Type:    types.Essay,
					Entries: []types.AnswerKeyEntry{{Number: "4", Token: "B"}},
				}},
			},
			want: "ESS\tPick one.\tB\n",
		},
		{
			name: "question without choices or key emits an empty field",
			doc: &types.Document{
				Sections: []types.QuestionSection{{
					Type:      types.Essay,
					Questions: []types.Question{{Number: "1", Text: "Discuss."}},
				}},
			},
			want: "ESS\tDiscuss.\t\n",
		},
		{
			name: "key of another type is not used",
			doc: &types.Document{
				Sections: []types.QuestionSection{{
					Type:      types.TrueFalse,
					Questions: []types.Question{{Number: "1", Text: "Water is wet.", Answers: []types.Answer{{Letter: "a", Text: "True"}}}},
				}},
				AnswerKey: types.AnswerKey{{
					Type:    types.MultipleChoice,
					Entries: []types.AnswerKeyEntry{{Number: "1", Token: "a"}},
				}},
			},
			want:          "TF\tWater is wet.\tTrue\tincorrect\n",
			wantUnmatched: []string{"TF/1"},
		},
		{
			name: "text is entity escaped",
			doc: &types.Document{
				Sections: []types.QuestionSection{{
					Type: types.MultipleChoice,
					Questions: []types.Question{{
						Number:  "1",
						Text:    `Is 1 < 2 & "x" > 'y'?`,
						Answers: []types.Answer{{Letter: "a", Text: "<b>yes</b>"}},
					}},
				}},
				AnswerKey: types.AnswerKey{{Type: types.MultipleChoice, Entries: []types.AnswerKeyEntry{{Number: "1", Token: "a"}}}},
			},
			want: "MC\tIs 1 &lt; 2 &amp; &quot;x&quot; &gt; &#039;y&#039;?\t&lt;b&gt;yes&lt;/b&gt;\tcorrect\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			stats, err := Write(&buf, tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, 1, stats.Records)
			assert.Equal(t, tt.wantUnmatched, stats.Unmatched)
		})
	}
}

func TestWrite_MissingQuestionText(t *testing.T) {
	doc := &types.Document{
		Sections: []types.QuestionSection{{
			Type:      types.Essay,
			Questions: []types.Question{{Number: "2"}},
		}},
	}
	_, _, err := Marshal(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingQuestionText))
}

func TestWrite_EmptyDocument(t *testing.T) {
	data, stats, err := Marshal(&types.Document{})
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Zero(t, stats.Records)
}

func TestMarshal_EndToEnd(t *testing.T) {
	src := strings.Join([]string{
		"1. Multiple-Choice Questions",
		"1. What is 2+2?",
		"a) 3",
		"b) 4",
		"ANSWER KEY",
		"1. Multiple-Choice Questions",
		"1. b",
	}, "\n")
	doc, err := parse.Parse(strings.NewReader(src))
	require.NoError(t, err)

	data, _, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "MC\tWhat is 2+2?\t3\tincorrect\t4\tcorrect\n", string(data))
}

func TestMarshal_SourceOrder(t *testing.T) {
	src := strings.Join([]string{
		"Essay Questions",
		"5. Fifth",
		"2. Second",
		"9. Ninth",
		"7. Seventh",
	}, "\n")
	doc, err := parse.Parse(strings.NewReader(src))
	require.NoError(t, err)

	data, _, err := Marshal(doc)
	require.NoError(t, err)
	records, err := ParseAll(string(data))
	require.NoError(t, err)

	var texts []string
	for _, r := range records {
		texts = append(texts, r.Text)
	}
	assert.Equal(t, []string{"Fifth", "Second", "Ninth", "Seventh"}, texts)
}

func TestRoundTrip(t *testing.T) {
	doc := &types.Document{
		Sections: []types.QuestionSection{
			{
				Type: types.MultipleChoice,
				Questions: []types.Question{
					{Number: "1", Text: "Fish & chips?", Answers: []types.Answer{
						{Letter: "a", Text: "<yes>"},
						{Letter: "b", Text: `"no"`},
						{Letter: "c", Text: "it's complicated"},
					}},
					{Number: "2", Text: "Unkeyed", Answers: []types.Answer{{Letter: "a", Text: "only"}}},
				},
			},
			{
				Type:      types.Essay,
				Questions: []types.Question{{Number: "1", Text: "Explain <html>."}},
			},
		},
		AnswerKey: types.AnswerKey{
			{Type: types.MultipleChoice, Entries: []types.AnswerKeyEntry{{Number: "1", Token: "C"}}},
			{Type: types.Essay, Entries: []types.AnswerKeyEntry{{Number: "1", Token: "Markup"}}},
		},
	}

	data, stats, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, []string{"MC/2"}, stats.Unmatched)

	records, err := ParseAll(string(data))
	require.NoError(t, err)

	want := []Record{
		{Type: types.MultipleChoice, Text: "Fish & chips?", Choices: []Choice{
			{Text: "<yes>"},
			{Text: `"no"`},
			{Text: "it's complicated", Correct: true},
		}},
		{Type: types.MultipleChoice, Text: "Unkeyed", Choices: []Choice{{Text: "only"}}},
		{Type: types.Essay, Text: "Explain <html>.", Key: "Markup"},
	}
	assert.Equal(t, want, records)
}

func TestParseRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "MC\tonly text\n"},
		{"unpaired choice", "MC\tq\ta\tcorrect\tb\n"},
		{"bad correctness", "MC\tq\ta\tright\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestEscapeUnescape(t *testing.T) {
	in := `a & b < c > d "e" 'f' &amp;`
	assert.Equal(t, "a &amp; b &lt; c &gt; d &quot;e&quot; &#039;f&#039; &amp;amp;", Escape(in))
	assert.Equal(t, in, Unescape(Escape(in)))
}

// Tabs are not entity-escaped, so a tab in source text adds a field and the
// record no longer parses back.
func TestWrite_TabInTextPassesThrough(t *testing.T) {
	doc := &types.Document{
		Sections: []types.QuestionSection{{
			Type: types.MultipleChoice,
			Questions: []types.Question{{
				Number:  "1",
				Text:    "Q\ta tab",
				Answers: []types.Answer{{Letter: "a", Text: "x"}},
			}},
		}},
	}
	data, _, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "MC\tQ\ta tab\tx\tincorrect\n", string(data))

	_, err = ParseAll(string(data))
	assert.Error(t, err)
}
