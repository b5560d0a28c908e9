// Package analyzer chains character filters, a tokenizer and token filters
// into one lazy analysis pipeline.
package analyzer

import (
	"fmt"
	"iter"

	"github.com/cognicore/runome/pkg/runome/charfilter"
	"github.com/cognicore/runome/pkg/runome/internalerr"
	"github.com/cognicore/runome/pkg/runome/tokenfilter"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

// Options configures an Analyzer.
type Options struct {
	CharFilters []charfilter.CharFilter
	// Tokenizer defaults to a tokenizer over the IPADIC system dictionary.
	Tokenizer    *tokenizer.Tokenizer
	TokenFilters []tokenfilter.Filter
}

// Analyzer is immutable after construction and safe for concurrent use
// when its filters are.
type Analyzer struct {
	charFilters  []charfilter.CharFilter
	tokenizer    *tokenizer.Tokenizer
	tokenFilters []tokenfilter.Filter
}

// New validates the pipeline. The tokenizer must not be in wakati mode and
// a terminal token filter may only appear last.
func New(opts Options) (*Analyzer, error) {
	tk := opts.Tokenizer
	if tk == nil {
		var err error
		tk, err = tokenizer.New(tokenizer.Options{})
		if err != nil {
			return nil, fmt.Errorf("default tokenizer: %w", err)
		}
	}
	if tk.Wakati() {
		return nil, &internalerr.ConfigError{
			Option: "wakati",
			Value:  true,
			Reason: "token filters need tokens, not surfaces",
		}
	}
	for i, f := range opts.TokenFilters {
		if f == nil {
			return nil, &internalerr.ConfigError{
				Option: "token_filters",
				Value:  i,
				Reason: "nil filter",
			}
		}
		if f.Terminal() && i != len(opts.TokenFilters)-1 {
			return nil, &internalerr.ConfigError{
				Option: "token_filters",
				Value:  fmt.Sprintf("%T", f),
				Reason: "a terminal filter must be the last one",
			}
		}
	}
	return &Analyzer{
		charFilters:  append([]charfilter.CharFilter(nil), opts.CharFilters...),
		tokenizer:    tk,
		tokenFilters: append([]tokenfilter.Filter(nil), opts.TokenFilters...),
	}, nil
}

// Analyze runs text through the pipeline. Elements are tokenizer.Token
// values unless the last filter is terminal. Character filters run when
// iteration starts; tokenization and token filters run as elements are
// pulled.
func (a *Analyzer) Analyze(text string) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		filtered := text
		for _, f := range a.charFilters {
			filtered = f.Apply(filtered)
		}
		s := tokenfilter.FromTokens(a.tokenizer.Tokens(filtered))
		for _, f := range a.tokenFilters {
			s = f.Apply(s)
		}
		for v, err := range s {
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Tokenizer returns the analyzer's tokenizer.
func (a *Analyzer) Tokenizer() *tokenizer.Tokenizer { return a.tokenizer }

// Collect drains seq, asserting each element to T. It stops at the first
// error.
func Collect[T any](seq iter.Seq2[any, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		t, ok := v.(T)
		if !ok {
			var zero T
			return out, fmt.Errorf("collect: got %T, want %T: %w", v, zero, internalerr.ErrInvalidInput)
		}
		out = append(out, t)
	}
	return out, nil
}
