package tokenfilter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/runome/pkg/runome/internalerr"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

func streamOf(tokens ...tokenizer.Token) Stream {
	return FromTokens(func(yield func(tokenizer.Token, error) bool) {
		for _, t := range tokens {
			if !yield(t, nil) {
				return
			}
		}
	})
}

func collect(t *testing.T, s Stream) []any {
	t.Helper()
	var out []any
	for v, err := range s {
		if err != nil {
			t.Fatalf("stream: %v", err)
		}
		out = append(out, v)
	}
	return out
}

func surfacesOf(t *testing.T, s Stream) []string {
	t.Helper()
	var out []string
	for _, v := range collect(t, s) {
		out = append(out, v.(tokenizer.Token).Surface)
	}
	return out
}

func tok(surface, pos string) tokenizer.Token {
	return tokenizer.Token{
		Surface: surface, PartOfSpeech: pos, InflType: "*", InflForm: "*",
		BaseForm: surface, Reading: surface, Phonetic: surface,
	}
}

func analyze(t *testing.T, text string) Stream {
	t.Helper()
	tk, err := tokenizer.New(tokenizer.Options{})
	if err != nil {
		t.Fatalf("tokenizer.New: %v", err)
	}
	return FromTokens(tk.Tokens(text))
}

func TestLowerUpperCase(t *testing.T) {
	in := tokenizer.Token{Surface: "TEST", BaseForm: "Test", Reading: "Ｒ", PartOfSpeech: "名詞"}

	lower := collect(t, LowerCaseFilter{}.Apply(streamOf(in)))[0].(tokenizer.Token)
	if lower.Surface != "test" || lower.BaseForm != "test" {
		t.Errorf("unexpected lower-cased token %+v", lower)
	}
	if lower.Reading != "Ｒ" || lower.PartOfSpeech != "名詞" {
		t.Errorf("other fields must be untouched: %+v", lower)
	}

	upper := collect(t, UpperCaseFilter{}.Apply(streamOf(in)))[0].(tokenizer.Token)
	if upper.Surface != "TEST" || upper.BaseForm != "TEST" {
		t.Errorf("unexpected upper-cased token %+v", upper)
	}
}

func TestLowerCase_Tokenized(t *testing.T) {
	got := surfacesOf(t, LowerCaseFilter{}.Apply(analyze(t, "テストTEST")))
	if diff := cmp.Diff([]string{"テスト", "test"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPOSKeepAndStop(t *testing.T) {
	in := []tokenizer.Token{
		tok("東京", "名詞,固有名詞,地域,一般"),
		tok("で", "助詞,格助詞,一般,*"),
		tok("降りる", "動詞,自立,*,*"),
		tok("駅", "名詞,接尾,地域,*"),
	}

	got := surfacesOf(t, NewPOSKeep([]string{"名詞", "動詞,自立"}).Apply(streamOf(in...)))
	if diff := cmp.Diff([]string{"東京", "降りる", "駅"}, got); diff != "" {
		t.Errorf("POSKeep mismatch (-want +got):\n%s", diff)
	}

	got = surfacesOf(t, NewPOSStop([]string{"名詞,接尾", "助詞"}).Apply(streamOf(in...)))
	if diff := cmp.Diff([]string{"東京", "降りる"}, got); diff != "" {
		t.Errorf("POSStop mismatch (-want +got):\n%s", diff)
	}

	if got := collect(t, NewPOSKeep(nil).Apply(streamOf(in...))); len(got) != 0 {
		t.Errorf("empty keep list should drop everything, got %v", got)
	}
}

func TestStopWord(t *testing.T) {
	in := streamOf(tok("The", "名詞"), tok("猫", "名詞"), tok("の", "助詞"))
	got := surfacesOf(t, NewStopWord([]string{"the", "の"}).Apply(in))
	if diff := cmp.Diff([]string{"猫"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompoundNoun(t *testing.T) {
	in := streamOf(
		tok("関西", "名詞,固有名詞,地域,一般"),
		tok("国際", "名詞,一般,*,*"),
		tok("空港", "名詞,一般,*,*"),
		tok("で", "助詞,格助詞,一般,*"),
		tok("猫", "名詞,一般,*,*"),
		tok("と", "助詞,並立助詞,*,*"),
		tok("限定", "名詞,サ変接続,*,*"),
		tok("品", "名詞,接尾,一般,*"),
	)
	got := collect(t, CompoundNounFilter{}.Apply(in))
	if len(got) != 5 {
		t.Fatalf("expected 5 tokens, got %v", got)
	}

	first := got[0].(tokenizer.Token)
	want := tokenizer.Token{
		Surface:      "関西国際空港",
		PartOfSpeech: CompoundNounPOS,
		InflType:     "*",
		InflForm:     "*",
		BaseForm:     "関西国際空港",
		Reading:      "関西国際空港",
		Phonetic:     "関西国際空港",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("compound mismatch (-want +got):\n%s", diff)
	}
	if lone := got[2].(tokenizer.Token); lone.PartOfSpeech != "名詞,一般,*,*" {
		t.Errorf("a lone noun must pass through unchanged, got %+v", lone)
	}
	if last := got[4].(tokenizer.Token); last.Surface != "限定品" {
		t.Errorf("trailing run not flushed, got %+v", last)
	}
}

func TestCompoundNoun_Tokenized(t *testing.T) {
	got := collect(t, CompoundNounFilter{}.Apply(analyze(t, "関西国際空港")))
	if len(got) != 1 {
		t.Fatalf("expected one compound, got %v", got)
	}
	c := got[0].(tokenizer.Token)
	if c.Surface != "関西国際空港" || c.Reading != "カンサイコクサイクウコウ" {
		t.Errorf("unexpected compound %+v", c)
	}
}

func TestExtractAttribute(t *testing.T) {
	f, err := NewExtractAttribute("base_form")
	if err != nil {
		t.Fatalf("NewExtractAttribute: %v", err)
	}
	if !f.Terminal() {
		t.Error("ExtractAttributeFilter must be terminal")
	}
	got := collect(t, f.Apply(streamOf(tok("猫", "名詞"), tok("犬", "名詞"))))
	if diff := cmp.Diff([]any{"猫", "犬"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAttribute_Unknown(t *testing.T) {
	_, err := NewExtractAttribute("node_type")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestTokenCount_Sumomo(t *testing.T) {
	f, err := NewTokenCount("surface", true)
	if err != nil {
		t.Fatalf("NewTokenCount: %v", err)
	}
	in := NewPOSKeep([]string{"名詞"}).Apply(analyze(t, "すもももももももものうち"))
	got := collect(t, f.Apply(in))
	want := []any{
		Count{Value: "もも", Count: 2},
		Count{Value: "すもも", Count: 1},
		Count{Value: "うち", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenCount_UnsortedFirstSeen(t *testing.T) {
	f, err := NewTokenCount("part_of_speech", false)
	if err != nil {
		t.Fatalf("NewTokenCount: %v", err)
	}
	in := streamOf(tok("a", "x"), tok("b", "y"), tok("c", "y"), tok("d", "z"), tok("e", "y"))
	got := collect(t, f.Apply(in))
	want := []any{Count{"x", 1}, Count{"y", 3}, Count{"z", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenCount_SortedTieKeepsFirstSeen(t *testing.T) {
	f, _ := NewTokenCount("surface", true)
	in := streamOf(tok("c", ""), tok("a", ""), tok("b", ""), tok("b", ""), tok("a", ""))
	got := collect(t, f.Apply(in))
	want := []any{Count{"a", 2}, Count{"b", 2}, Count{"c", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminalFlags(t *testing.T) {
	nonTerminal := []Filter{
		LowerCaseFilter{}, UpperCaseFilter{}, CompoundNounFilter{},
		NewPOSKeep(nil), NewPOSStop(nil), NewStopWord(nil),
	}
	for _, f := range nonTerminal {
		if f.Terminal() {
			t.Errorf("%T should not be terminal", f)
		}
	}
	count, _ := NewTokenCount("surface", false)
	if !count.Terminal() {
		t.Error("TokenCountFilter must be terminal")
	}
}

func TestNonTokenInputIsAnError(t *testing.T) {
	extract, _ := NewExtractAttribute("surface")
	strs := extract.Apply(streamOf(tok("猫", "名詞")))

	var gotErr error
	for _, err := range (LowerCaseFilter{}).Apply(strs) {
		if err != nil {
			gotErr = err
		}
	}
	if !errors.Is(gotErr, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", gotErr)
	}
}

func TestUpstreamErrorStopsStream(t *testing.T) {
	boom := errors.New("boom")
	in := Stream(func(yield func(any, error) bool) {
		if !yield(tok("猫", "名詞"), nil) {
			return
		}
		yield(nil, boom)
	})
	count, _ := NewTokenCount("surface", false)

	var values []any
	var gotErr error
	for v, err := range count.Apply(in) {
		if err != nil {
			gotErr = err
			continue
		}
		values = append(values, v)
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("expected upstream error, got %v", gotErr)
	}
	if len(values) != 0 {
		t.Errorf("no counts should be emitted after an error, got %v", values)
	}
}

func TestFilters_Lazy(t *testing.T) {
	pulled := 0
	in := Stream(func(yield func(any, error) bool) {
		for _, s := range []string{"a", "b", "c"} {
			pulled++
			if !yield(tok(s, "名詞"), nil) {
				return
			}
		}
	})
	for range (LowerCaseFilter{}).Apply(in) {
		break
	}
	if pulled != 1 {
		t.Errorf("expected a single pull, got %d", pulled)
	}
}
