package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/runome/pkg/runome/tokenfilter"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

func TestBuilderEmptyItems(t *testing.T) {
	builder := New()

	rec := builder.Build("stdin", 1, "", nil)

	if len(rec.Tokens) != 0 || len(rec.Words) != 0 || len(rec.Counts) != 0 {
		t.Errorf("Empty items should produce an empty record, got %+v", rec)
	}
	if rec.Line != 1 || rec.Source != "stdin" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestBuilderULIDUniqueness(t *testing.T) {
	builder := New()

	// Generate multiple records rapidly
	ids := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		rec := builder.Build("", i, "text", nil)
		if ids[rec.ID] {
			t.Errorf("Duplicate ULID generated: %s", rec.ID)
		}
		if rec.ID <= prev {
			t.Errorf("IDs should increase: %s after %s", rec.ID, prev)
		}
		ids[rec.ID] = true
		prev = rec.ID
	}

	if len(ids) != 1000 {
		t.Errorf("Expected 1000 unique IDs, got %d", len(ids))
	}
}

func TestBuilderTimestamp(t *testing.T) {
	at := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	builder := New()
	builder.now = func() time.Time { return at }

	rec := builder.Build("", 1, "x", nil)
	id, err := ulid.Parse(rec.ID)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := ulid.Time(id.Time()); !got.Equal(at) {
		t.Errorf("ID time = %v, want %v", got, at)
	}
}

func TestBuilderItems(t *testing.T) {
	builder := New()
	tok := tokenizer.Token{
		Surface: "すもも", PartOfSpeech: "名詞,一般,*,*", InflType: "*", InflForm: "*",
		BaseForm: "すもも", Reading: "スモモ", Phonetic: "スモモ", NodeType: tokenizer.SystemDictionary,
	}

	rec := builder.Build("", 3, "すもも", []any{tok, "すもも", tokenfilter.Count{Value: "もも", Count: 2}, 42})

	if len(rec.Tokens) != 1 || rec.Tokens[0].Reading != "スモモ" || rec.Tokens[0].NodeType != tokenizer.SystemDictionary.String() {
		t.Errorf("unexpected tokens %+v", rec.Tokens)
	}
	if len(rec.Words) != 1 || rec.Words[0] != "すもも" {
		t.Errorf("unexpected words %v", rec.Words)
	}
	if len(rec.Counts) != 1 || rec.Counts[0] != (Count{Value: "もも", Count: 2}) {
		t.Errorf("unexpected counts %+v", rec.Counts)
	}
}

func TestRecordJSON(t *testing.T) {
	builder := New()
	rec := builder.Build("", 1, "猫", []any{"猫"})

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"words":["猫"]`) {
		t.Errorf("missing words in %s", s)
	}
	if strings.Contains(s, `"tokens"`) || strings.Contains(s, `"source"`) {
		t.Errorf("empty fields should be omitted: %s", s)
	}
}
