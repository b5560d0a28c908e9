package config

import (
	"context"
	"fmt"

	"github.com/cognicore/runome/pkg/runome/analyzer"
	"github.com/cognicore/runome/pkg/runome/charfilter"
	"github.com/cognicore/runome/pkg/runome/dict/sqlitedict"
	"github.com/cognicore/runome/pkg/runome/dict/sysdict"
	"github.com/cognicore/runome/pkg/runome/internalerr"
	"github.com/cognicore/runome/pkg/runome/tokenfilter"
	"github.com/cognicore/runome/pkg/runome/tokenizer"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	AnalyzerPath string
	StoplistPath string
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer *tokenizer.Tokenizer
	// Analyzer is nil when the tokenizer is in wakati mode and no filters
	// are configured.
	Analyzer  *analyzer.Analyzer
	Stopwords []string
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	comp := &Components{}

	// Load stoplist
	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stopwords = stoplist.Terms
	}

	// Load analyzer
	cfg := &Analyzer{}
	if l.AnalyzerPath != "" {
		var err error
		cfg, err = LoadAnalyzer(l.AnalyzerPath)
		if err != nil {
			return nil, fmt.Errorf("load analyzer: %w", err)
		}
	}

	tk, err := cfg.Tokenizer.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build tokenizer: %w", err)
	}
	comp.Tokenizer = tk

	if tk.Wakati() && len(cfg.CharFilters) == 0 && len(cfg.TokenFilters) == 0 {
		return comp, nil
	}

	charFilters, err := buildCharFilters(cfg.CharFilters)
	if err != nil {
		return nil, fmt.Errorf("build char filters: %w", err)
	}
	tokenFilters, err := buildTokenFilters(cfg.TokenFilters, comp.Stopwords)
	if err != nil {
		return nil, fmt.Errorf("build token filters: %w", err)
	}
	comp.Analyzer, err = analyzer.New(analyzer.Options{
		CharFilters:  charFilters,
		Tokenizer:    tk,
		TokenFilters: tokenFilters,
	})
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	return comp, nil
}

// Build opens the configured dictionary and returns a tokenizer over it.
func (c Tokenizer) Build(ctx context.Context) (*tokenizer.Tokenizer, error) {
	opts := tokenizer.Options{
		MaxUnknownLength: c.MaxUnknownLength,
		Wakati:           c.Wakati,
		UserDict:         c.UserDict,
	}

	switch c.Dict {
	case "", "ipa":
		opts.Store = sysdict.IPA()
	case "uni":
		opts.Store = sysdict.UniDic()
	case "sqlite":
		if c.DictPath == "" {
			return nil, &internalerr.ConfigError{Option: "dict_path", Value: "", Reason: "required for sqlite dictionaries"}
		}
		d, err := sqlitedict.Open(ctx, c.DictPath)
		if err != nil {
			return nil, fmt.Errorf("open dictionary: %w", err)
		}
		opts.Store = d
	default:
		return nil, &internalerr.ConfigError{Option: "dict", Value: c.Dict, Reason: "expected ipa, uni or sqlite"}
	}

	if c.Categories != "" {
		rules, err := LoadCategories(c.Categories)
		if err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		opts.Classifier = rules
	}

	return tokenizer.New(opts)
}

func buildCharFilters(cfgs []CharFilter) ([]charfilter.CharFilter, error) {
	var out []charfilter.CharFilter
	for _, c := range cfgs {
		switch c.Type {
		case "unicode_normalize":
			f, err := charfilter.NewUnicodeNormalize(c.Form)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case "regex_replace":
			f, err := charfilter.NewRegexReplace(c.Pattern, c.Replacement)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case "html_strip":
			out = append(out, charfilter.NewHTMLStrip())
		default:
			return nil, &internalerr.ConfigError{Option: "char_filters.type", Value: c.Type, Reason: "unknown filter"}
		}
	}
	return out, nil
}

func buildTokenFilters(cfgs []TokenFilter, stopwords []string) ([]tokenfilter.Filter, error) {
	var out []tokenfilter.Filter
	for _, c := range cfgs {
		switch c.Type {
		case "lower_case":
			out = append(out, tokenfilter.LowerCaseFilter{})
		case "upper_case":
			out = append(out, tokenfilter.UpperCaseFilter{})
		case "pos_keep":
			out = append(out, tokenfilter.NewPOSKeep(c.POS))
		case "pos_stop":
			out = append(out, tokenfilter.NewPOSStop(c.POS))
		case "compound_noun":
			out = append(out, tokenfilter.CompoundNounFilter{})
		case "stop_word":
			words := append(append([]string(nil), stopwords...), c.Words...)
			if c.Stoplist != "" {
				sl, err := LoadStoplist(c.Stoplist)
				if err != nil {
					return nil, fmt.Errorf("load stoplist: %w", err)
				}
				words = append(words, sl.Terms...)
			}
			out = append(out, tokenfilter.NewStopWord(words))
		case "extract_attribute":
			attr := c.Attr
			if attr == "" {
				attr = tokenizer.AttrSurface
			}
			f, err := tokenfilter.NewExtractAttribute(attr)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case "token_count":
			attr := c.Attr
			if attr == "" {
				attr = tokenizer.AttrSurface
			}
			f, err := tokenfilter.NewTokenCount(attr, c.Sorted)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		default:
			return nil, &internalerr.ConfigError{Option: "token_filters.type", Value: c.Type, Reason: "unknown filter"}
		}
	}
	return out, nil
}
