// Package tokenfilter transforms the token stream produced by the
// tokenizer. Terminal filters change the element type of the stream and
// must come last in an analyzer.
package tokenfilter

import (
	"fmt"
	"iter"

	"github.com/cognicore/runome/pkg/runome/internalerr"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

// Stream is a lazy sequence of analysis results. Elements are
// tokenizer.Token values until a terminal filter replaces them.
type Stream = iter.Seq2[any, error]

// Filter transforms a stream.
type Filter interface {
	Apply(in Stream) Stream
	// Terminal reports whether the filter emits something other than
	// tokenizer.Token values.
	Terminal() bool
}

// FromTokens adapts a typed token sequence to a Stream.
func FromTokens(seq iter.Seq2[tokenizer.Token, error]) Stream {
	return func(yield func(any, error) bool) {
		for tok, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokens walks in, yielding its elements as tokens. A non-token element
// ends the walk with an error naming the filter.
func Tokens(name string, in Stream) iter.Seq2[tokenizer.Token, error] {
	return func(yield func(tokenizer.Token, error) bool) {
		for v, err := range in {
			if err != nil {
				yield(tokenizer.Token{}, err)
				return
			}
			tok, ok := v.(tokenizer.Token)
			if !ok {
				yield(tokenizer.Token{}, fmt.Errorf("%s: got %T, want token: %w", name, v, internalerr.ErrInvalidInput))
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// mapTokens rewrites or drops each token. fn returns false to drop.
func mapTokens(name string, in Stream, fn func(tokenizer.Token) (tokenizer.Token, bool)) Stream {
	return func(yield func(any, error) bool) {
		for tok, err := range Tokens(name, in) {
			if err != nil {
				yield(nil, err)
				return
			}
			out, keep := fn(tok)
			if !keep {
				continue
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}
