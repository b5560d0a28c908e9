// Package tokenizer segments Japanese text into morphemes by finding the
// minimum-cost path through a lattice of dictionary and unknown-word
// candidates.
package tokenizer

import (
	"fmt"
	"iter"

	"github.com/cognicore/runome/pkg/runome/charclass"
	"github.com/cognicore/runome/pkg/runome/dict"
	"github.com/cognicore/runome/pkg/runome/dict/sysdict"
	"github.com/cognicore/runome/pkg/runome/internalerr"
	"github.com/cognicore/runome/pkg/runome/lattice"
)

// DefaultMaxUnknownLength is used when Options.MaxUnknownLength is zero.
const DefaultMaxUnknownLength = lattice.DefaultMaxUnknownLength

// Options configures a Tokenizer.
type Options struct {
	// Store defaults to the IPADIC system dictionary.
	Store dict.Store
	// Classifier defaults to Store when it implements dict.Classifier,
	// and to charclass.Default otherwise.
	Classifier dict.Classifier
	// MaxUnknownLength caps grouped unknown words, in characters.
	MaxUnknownLength int
	// Wakati makes every call yield surfaces only.
	Wakati bool
	// UserDict is the path of a user dictionary. Not supported yet; any
	// non-empty value is rejected.
	UserDict string
}

// Tokenizer is safe for concurrent use.
type Tokenizer struct {
	store      dict.Store
	classifier dict.Classifier
	maxUnknown int
	wakati     bool
}

// New validates opts and returns a Tokenizer.
func New(opts Options) (*Tokenizer, error) {
	if opts.UserDict != "" {
		return nil, &internalerr.ConfigError{
			Option: "udic",
			Value:  opts.UserDict,
			Reason: "user dictionaries are not supported",
			Err:    internalerr.ErrNotImplemented,
		}
	}
	if opts.MaxUnknownLength < 0 {
		return nil, &internalerr.ConfigError{
			Option: "max_unknown_length",
			Value:  opts.MaxUnknownLength,
			Reason: "must not be negative",
		}
	}

	t := &Tokenizer{
		store:      opts.Store,
		classifier: opts.Classifier,
		maxUnknown: opts.MaxUnknownLength,
		wakati:     opts.Wakati,
	}
	if t.maxUnknown == 0 {
		t.maxUnknown = DefaultMaxUnknownLength
	}
	if t.store == nil {
		t.store = sysdict.IPA()
	}
	if t.classifier == nil {
		if c, ok := t.store.(dict.Classifier); ok {
			t.classifier = c
		} else {
			t.classifier = charclass.Default()
		}
	}
	return t, nil
}

// Wakati reports whether the tokenizer was built in wakati mode.
func (t *Tokenizer) Wakati() bool { return t.wakati }

// MaxUnknownLength returns the cap on grouped unknown words.
func (t *Tokenizer) MaxUnknownLength() int { return t.maxUnknown }

type callConfig struct {
	wakati      bool
	baseFormUnk bool
}

// CallOption adjusts a single Tokenize call.
type CallOption func(*callConfig)

// WithWakati selects surface-only output for one call. It has no effect
// on a tokenizer built with Options.Wakati.
func WithWakati(wakati bool) CallOption {
	return func(c *callConfig) { c.wakati = wakati }
}

// WithBaseFormUnk controls the base form of unknown words: their surface
// when true (the default), "*" otherwise.
func WithBaseFormUnk(on bool) CallOption {
	return func(c *callConfig) { c.baseFormUnk = on }
}

func (t *Tokenizer) callConfig(opts []CallOption) callConfig {
	c := callConfig{baseFormUnk: true}
	for _, opt := range opts {
		opt(&c)
	}
	if t.wakati {
		c.wakati = true
	}
	return c
}

// Tokenize yields a Token per morpheme, or the surface string of each
// morpheme in wakati mode. The sequence is lazy; each call starts over.
func (t *Tokenizer) Tokenize(text string, opts ...CallOption) iter.Seq2[any, error] {
	cfg := t.callConfig(opts)
	return func(yield func(any, error) bool) {
		for path, err := range t.paths(text) {
			if err != nil {
				yield(nil, err)
				return
			}
			for _, n := range path {
				var v any
				if cfg.wakati {
					v = n.Surface
				} else {
					v = t.token(n, cfg.baseFormUnk)
				}
				if !yield(v, nil) {
					return
				}
			}
		}
	}
}

// Tokens yields full tokens regardless of wakati mode.
func (t *Tokenizer) Tokens(text string, opts ...CallOption) iter.Seq2[Token, error] {
	cfg := t.callConfig(opts)
	return func(yield func(Token, error) bool) {
		for path, err := range t.paths(text) {
			if err != nil {
				yield(Token{}, err)
				return
			}
			for _, n := range path {
				if !yield(t.token(n, cfg.baseFormUnk), nil) {
					return
				}
			}
		}
	}
}

// Surfaces yields the surface of each morpheme.
func (t *Tokenizer) Surfaces(text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for path, err := range t.paths(text) {
			if err != nil {
				yield("", err)
				return
			}
			for _, n := range path {
				if !yield(n.Surface, nil) {
					return
				}
			}
		}
	}
}

// paths yields the best path of each chunk of text.
func (t *Tokenizer) paths(text string) iter.Seq2[[]*lattice.Node, error] {
	return func(yield func([]*lattice.Node, error) bool) {
		for chunk := range chunks(text) {
			la, err := lattice.Build(chunk, t.store, t.classifier, lattice.Options{MaxUnknownLength: t.maxUnknown})
			if err != nil {
				yield(nil, fmt.Errorf("build lattice: %w", err))
				return
			}
			path, err := la.BestPath()
			if err != nil {
				yield(nil, fmt.Errorf("search path: %w", err))
				return
			}
			if !yield(path, nil) {
				return
			}
		}
	}
}

func (t *Tokenizer) token(n *lattice.Node, baseFormUnk bool) Token {
	if n.Class == lattice.Unknown {
		base := "*"
		if baseFormUnk {
			base = n.Surface
		}
		return Token{
			Surface:      n.Surface,
			PartOfSpeech: orStar(n.POS),
			InflType:     "*",
			InflForm:     "*",
			BaseForm:     base,
			Reading:      "*",
			Phonetic:     "*",
			NodeType:     Unknown,
		}
	}

	e := t.store.Entry(n.ID)
	nt := SystemDictionary
	if n.Class == lattice.User {
		nt = UserDictionary
	}
	return Token{
		Surface:      n.Surface,
		PartOfSpeech: orStar(e.POS),
		InflType:     orStar(e.InflType),
		InflForm:     orStar(e.InflForm),
		BaseForm:     orStar(e.BaseForm),
		Reading:      orStar(e.Reading),
		Phonetic:     orStar(e.Phonetic),
		NodeType:     nt,
	}
}

func orStar(s string) string {
	if s == "" {
		return "*"
	}
	return s
}
