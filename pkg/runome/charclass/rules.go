// Package charclass provides a rule-based dict.Classifier for stores that
// carry no character definitions of their own, such as memdict and
// sqlitedict dictionaries.
package charclass

import (
	"sort"

	"github.com/cognicore/runome/pkg/runome/dict"
)

type rangeRule struct {
	lo, hi rune
	cats   []string
}

// Rules maps code point ranges to category labels.
// When ranges overlap, the range added last wins, so specific rules are
// added after the general ones they refine.
// Rules must not be modified once handed to a tokenizer.
type Rules struct {
	ranges     []rangeRule
	categories map[string]dict.Category
	fallback   []string
}

// New returns an empty rule set that classifies every character as DEFAULT.
func New() *Rules {
	r := &Rules{
		categories: make(map[string]dict.Category),
		fallback:   []string{dict.DefaultCategory},
	}
	r.SetCategory(dict.Category{
		Name:      dict.DefaultCategory,
		Group:     true,
		Templates: []dict.Template{dict.FallbackTemplate},
	})
	return r
}

// AddRange assigns categories to the inclusive code point range [lo, hi].
// The first category is the primary one.
func (r *Rules) AddRange(lo, hi rune, cats ...string) {
	if hi < lo || len(cats) == 0 {
		return
	}
	r.ranges = append(r.ranges, rangeRule{lo: lo, hi: hi, cats: append([]string(nil), cats...)})
}

// SetCategory registers or replaces the policy of a category.
func (r *Rules) SetCategory(c dict.Category) {
	r.categories[c.Name] = c
}

// Categorize implements dict.Classifier. The returned slice is shared and
// must not be modified.
func (r *Rules) Categorize(ch rune) []string {
	for i := len(r.ranges) - 1; i >= 0; i-- {
		rr := r.ranges[i]
		if ch >= rr.lo && ch <= rr.hi {
			return rr.cats
		}
	}
	return r.fallback
}

// Category implements dict.Classifier.
func (r *Rules) Category(name string) (dict.Category, bool) {
	c, ok := r.categories[name]
	return c, ok
}

// Categories returns the registered category names, sorted.
func (r *Rules) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
