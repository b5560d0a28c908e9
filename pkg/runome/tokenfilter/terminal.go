package tokenfilter

import (
	"slices"

	"github.com/cognicore/runome/pkg/runome/internalerr"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

// ExtractAttributeFilter emits one attribute of each token as a string.
type ExtractAttributeFilter struct {
	attr string
}

// NewExtractAttribute returns a filter for one of tokenizer.Attributes.
func NewExtractAttribute(attr string) (*ExtractAttributeFilter, error) {
	if err := checkAttribute(attr); err != nil {
		return nil, err
	}
	return &ExtractAttributeFilter{attr: attr}, nil
}

func (*ExtractAttributeFilter) Terminal() bool { return true }

func (f *ExtractAttributeFilter) Apply(in Stream) Stream {
	return func(yield func(any, error) bool) {
		for t, err := range Tokens("ExtractAttributeFilter", in) {
			if err != nil {
				yield(nil, err)
				return
			}
			v, _ := t.Attribute(f.attr)
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Count is the number of tokens sharing an attribute value.
type Count struct {
	Value string
	Count int
}

// TokenCountFilter consumes the whole stream and emits a Count per
// distinct attribute value, in order of first appearance. When sorted,
// counts are in descending order and equal counts keep first-appearance
// order.
type TokenCountFilter struct {
	attr   string
	sorted bool
}

// NewTokenCount returns a filter counting one of tokenizer.Attributes.
func NewTokenCount(attr string, sorted bool) (*TokenCountFilter, error) {
	if err := checkAttribute(attr); err != nil {
		return nil, err
	}
	return &TokenCountFilter{attr: attr, sorted: sorted}, nil
}

func (*TokenCountFilter) Terminal() bool { return true }

func (f *TokenCountFilter) Apply(in Stream) Stream {
	return func(yield func(any, error) bool) {
		var counts []Count
		index := make(map[string]int)
		for t, err := range Tokens("TokenCountFilter", in) {
			if err != nil {
				yield(nil, err)
				return
			}
			v, _ := t.Attribute(f.attr)
			i, ok := index[v]
			if !ok {
				i = len(counts)
				index[v] = i
				counts = append(counts, Count{Value: v})
			}
			counts[i].Count++
		}
		if f.sorted {
			slices.SortStableFunc(counts, func(a, b Count) int { return b.Count - a.Count })
		}
		for _, c := range counts {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func checkAttribute(attr string) error {
	if slices.Contains(tokenizer.Attributes, attr) {
		return nil
	}
	return &internalerr.ConfigError{
		Option: "att",
		Value:  attr,
		Reason: "unknown token attribute",
	}
}
