package tokenfilter

import (
	"strings"

	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

// LowerCaseFilter lower-cases the surface and base form of each token.
type LowerCaseFilter struct{}

func (LowerCaseFilter) Terminal() bool { return false }

func (LowerCaseFilter) Apply(in Stream) Stream {
	return mapTokens("LowerCaseFilter", in, func(t tokenizer.Token) (tokenizer.Token, bool) {
		t.Surface = strings.ToLower(t.Surface)
		t.BaseForm = strings.ToLower(t.BaseForm)
		return t, true
	})
}

// UpperCaseFilter upper-cases the surface and base form of each token.
type UpperCaseFilter struct{}

func (UpperCaseFilter) Terminal() bool { return false }

func (UpperCaseFilter) Apply(in Stream) Stream {
	return mapTokens("UpperCaseFilter", in, func(t tokenizer.Token) (tokenizer.Token, bool) {
		t.Surface = strings.ToUpper(t.Surface)
		t.BaseForm = strings.ToUpper(t.BaseForm)
		return t, true
	})
}

// POSKeepFilter keeps tokens whose part of speech starts with one of the
// given prefixes, such as "名詞" or "動詞,自立".
type POSKeepFilter struct {
	prefixes []string
}

func NewPOSKeep(prefixes []string) *POSKeepFilter {
	return &POSKeepFilter{prefixes: append([]string(nil), prefixes...)}
}

func (*POSKeepFilter) Terminal() bool { return false }

func (f *POSKeepFilter) Apply(in Stream) Stream {
	return mapTokens("POSKeepFilter", in, func(t tokenizer.Token) (tokenizer.Token, bool) {
		return t, hasAnyPrefix(t.PartOfSpeech, f.prefixes)
	})
}

// POSStopFilter drops tokens whose part of speech starts with one of the
// given prefixes.
type POSStopFilter struct {
	prefixes []string
}

func NewPOSStop(prefixes []string) *POSStopFilter {
	return &POSStopFilter{prefixes: append([]string(nil), prefixes...)}
}

func (*POSStopFilter) Terminal() bool { return false }

func (f *POSStopFilter) Apply(in Stream) Stream {
	return mapTokens("POSStopFilter", in, func(t tokenizer.Token) (tokenizer.Token, bool) {
		return t, !hasAnyPrefix(t.PartOfSpeech, f.prefixes)
	})
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// StopWordFilter drops tokens whose surface is a stop word. Matching is
// case-insensitive.
type StopWordFilter struct {
	words map[string]struct{}
}

func NewStopWord(words []string) *StopWordFilter {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &StopWordFilter{words: stops}
}

func (*StopWordFilter) Terminal() bool { return false }

func (f *StopWordFilter) Apply(in Stream) Stream {
	return mapTokens("StopWordFilter", in, func(t tokenizer.Token) (tokenizer.Token, bool) {
		_, stop := f.words[strings.ToLower(t.Surface)]
		return t, !stop
	})
}

// CompoundNounPOS is the part of speech of merged nouns.
const CompoundNounPOS = "名詞,複合,*,*"

// CompoundNounFilter merges runs of consecutive nouns into one token.
// Surface, base form, reading and phonetic are concatenated; the node type
// is the first noun's. A lone noun passes through unchanged.
type CompoundNounFilter struct{}

func (CompoundNounFilter) Terminal() bool { return false }

func (CompoundNounFilter) Apply(in Stream) Stream {
	return func(yield func(any, error) bool) {
		var comp *tokenizer.Token
		for t, err := range Tokens("CompoundNounFilter", in) {
			if err != nil {
				yield(nil, err)
				return
			}
			if strings.HasPrefix(t.PartOfSpeech, "名詞") {
				if comp == nil {
					comp = &t
				} else {
					merged := mergeNouns(*comp, t)
					comp = &merged
				}
				continue
			}
			if comp != nil {
				if !yield(*comp, nil) {
					return
				}
				comp = nil
			}
			if !yield(t, nil) {
				return
			}
		}
		if comp != nil {
			yield(*comp, nil)
		}
	}
}

func mergeNouns(a, b tokenizer.Token) tokenizer.Token {
	return tokenizer.Token{
		Surface:      a.Surface + b.Surface,
		PartOfSpeech: CompoundNounPOS,
		InflType:     "*",
		InflForm:     "*",
		BaseForm:     a.BaseForm + b.BaseForm,
		Reading:      a.Reading + b.Reading,
		Phonetic:     a.Phonetic + b.Phonetic,
		NodeType:     a.NodeType,
	}
}
