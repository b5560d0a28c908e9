package record

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/runome/pkg/runome/tokenfilter"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

// Builder constructs output records with sortable unique IDs.
// A Builder is not safe for concurrent use.
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new record builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Record is one analyzed input line.
type Record struct {
	ID     string   `json:"id"`
	Source string   `json:"source,omitempty"`
	Line   int      `json:"line"`
	Text   string   `json:"text"`
	Tokens []Token  `json:"tokens,omitempty"`
	Words  []string `json:"words,omitempty"`
	Counts []Count  `json:"counts,omitempty"`
}

// Token is the JSON form of a tokenizer.Token.
type Token struct {
	Surface      string `json:"surface"`
	PartOfSpeech string `json:"part_of_speech"`
	InflType     string `json:"infl_type"`
	InflForm     string `json:"infl_form"`
	BaseForm     string `json:"base_form"`
	Reading      string `json:"reading"`
	Phonetic     string `json:"phonetic"`
	NodeType     string `json:"node_type"`
}

// Count is one entry of a token count.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Build creates a record for a line of text and its analysis. Each element
// of items is a tokenizer.Token, a string or a tokenfilter.Count; anything
// else is ignored.
func (b *Builder) Build(source string, line int, text string, items []any) Record {
	rec := Record{
		ID:     ulid.MustNew(ulid.Timestamp(b.now()), b.entropy).String(),
		Source: source,
		Line:   line,
		Text:   text,
	}

	for _, item := range items {
		switch v := item.(type) {
		case tokenizer.Token:
			rec.Tokens = append(rec.Tokens, FromToken(v))
		case string:
			rec.Words = append(rec.Words, v)
		case tokenfilter.Count:
			rec.Counts = append(rec.Counts, Count(v))
		}
	}

	return rec
}

// FromToken converts a token to its JSON form.
func FromToken(t tokenizer.Token) Token {
	return Token{
		Surface:      t.Surface,
		PartOfSpeech: t.PartOfSpeech,
		InflType:     t.InflType,
		InflForm:     t.InflForm,
		BaseForm:     t.BaseForm,
		Reading:      t.Reading,
		Phonetic:     t.Phonetic,
		NodeType:     t.NodeType.String(),
	}
}
