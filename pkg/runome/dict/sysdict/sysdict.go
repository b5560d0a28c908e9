// Package sysdict exposes the IPADIC and UniDic artifacts shipped with
// kagome-dict through the dict.Store and dict.Classifier contracts.
package sysdict

import (
	"strings"
	"sync"

	kdict "github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"

	"github.com/cognicore/runome/pkg/runome/dict"
)

// ipaPOSLevels is the POS depth of IPADIC, used when a dictionary carries
// no hierarchy metadata.
const ipaPOSLevels = 4

// layout holds feature indexes of the token fields; -1 means absent.
type layout struct {
	inflType, inflForm, baseForm, reading, phonetic int
}

var (
	noLayout  = layout{-1, -1, -1, -1, -1}
	ipaLayout = layout{ipa.InflectionalType, ipa.InflectionalForm, ipa.BaseForm, ipa.Reading, ipa.Pronunciation}
	// UniDic has no reading column; LForm is its kana reading.
	uniLayout = layout{uni.InflectionalType, uni.InflectionalForm, uni.OrthBase, uni.LForm, uni.Pron}
)

// Dict adapts a kagome-dict dictionary. It is immutable and safe for
// concurrent use.
type Dict struct {
	d          *kdict.Dict
	categories map[string]dict.Category
	labels     [][]string
	defaultCat byte
	unkLevels  int
	fields     layout
}

var (
	ipaOnce sync.Once
	ipaDict *Dict
	uniOnce sync.Once
	uniDict *Dict
)

// IPA returns the shared IPADIC system dictionary, loading it on first use.
func IPA() *Dict {
	ipaOnce.Do(func() {
		ipaDict = newDict(ipa.Dict(), ipaLayout)
	})
	return ipaDict
}

// UniDic returns the shared UniDic system dictionary, loading it on first use.
func UniDic() *Dict {
	uniOnce.Do(func() {
		uniDict = newDict(uni.Dict(), uniLayout)
	})
	return uniDict
}

// New wraps a loaded kagome-dict dictionary. Token fields come from the
// dictionary's contents metadata; fields it does not describe are "*".
func New(d *kdict.Dict) *Dict {
	return newDict(d, noLayout)
}

func newDict(d *kdict.Dict, fallback layout) *Dict {
	s := &Dict{
		d:          d,
		categories: make(map[string]dict.Category, len(d.CharClass)),
		labels:     make([][]string, len(d.CharClass)),
		unkLevels:  ipaPOSLevels,
		fields:     resolveLayout(d.ContentsMeta, fallback),
	}
	if v, ok := d.UnkDict.ContentsMeta[kdict.POSHierarchy]; ok && v > 0 {
		s.unkLevels = int(v)
	}

	for class, name := range d.CharClass {
		if name == dict.DefaultCategory {
			s.defaultCat = byte(class)
		}
		s.categories[name] = s.buildCategory(class, name)
		s.labels[class] = []string{name}
	}
	return s
}

func (s *Dict) buildCategory(class int, name string) dict.Category {
	c := dict.Category{Name: name}
	if class < len(s.d.InvokeList) {
		c.Invoke = s.d.InvokeList[class]
	}
	if class < len(s.d.GroupList) {
		c.Group = s.d.GroupList[class]
	}

	start, ok := s.d.UnkDict.Index[int32(class)]
	if !ok {
		return c
	}
	dup := s.d.UnkDict.IndexDup[int32(class)]
	for id := int(start); id <= int(start)+int(dup); id++ {
		if id >= len(s.d.UnkDict.Morphs) {
			break
		}
		m := s.d.UnkDict.Morphs[id]
		var pos string
		if id < len(s.d.UnkDict.Contents) {
			pos = joinPOS(s.d.UnkDict.Contents[id], s.unkLevels)
		}
		c.Templates = append(c.Templates, dict.Template{
			LeftID:  int(m.LeftID),
			RightID: int(m.RightID),
			Cost:    int(m.Weight),
			POS:     pos,
		})
	}
	return c
}

// Lookup implements dict.Store.
func (s *Dict) Lookup(input string) []dict.Match {
	lens, ids := s.d.Index.CommonPrefixSearch(input)
	if len(lens) == 0 {
		return nil
	}
	var matches []dict.Match
	for i, group := range ids {
		for _, id := range group {
			m := s.d.Morphs[id]
			matches = append(matches, dict.Match{
				ID:      id,
				Length:  lens[i],
				LeftID:  int(m.LeftID),
				RightID: int(m.RightID),
				Cost:    int(m.Weight),
			})
		}
	}
	return matches
}

// Entry implements dict.Store. kagome-dict does not keep surfaces per entry,
// so Surface is left empty; the lattice takes it from the matched input.
func (s *Dict) Entry(id int) dict.Entry {
	if id < 0 || id >= len(s.d.Morphs) {
		return dict.Entry{}
	}
	m := s.d.Morphs[id]

	var posIDs kdict.POS
	if id < len(s.d.POSTable.POSs) {
		posIDs = s.d.POSTable.POSs[id]
	}
	var contents []string
	if id < len(s.d.Contents) {
		contents = s.d.Contents[id]
	}
	features := make([]string, 0, len(posIDs)+len(contents))
	for _, p := range posIDs {
		features = append(features, s.d.POSTable.NameList[p])
	}
	features = append(features, contents...)

	return dict.Entry{
		LeftID:   int(m.LeftID),
		RightID:  int(m.RightID),
		Cost:     int(m.Weight),
		POS:      strings.Join(features[:len(posIDs)], ","),
		InflType: pick(features, s.fields.inflType),
		InflForm: pick(features, s.fields.inflForm),
		BaseForm: pick(features, s.fields.baseForm),
		Reading:  pick(features, s.fields.reading),
		Phonetic: pick(features, s.fields.phonetic),
	}
}

// ConnectionCost implements dict.Store.
func (s *Dict) ConnectionCost(prevRightID, nextLeftID int) int {
	return int(s.d.Connection.At(prevRightID, nextLeftID))
}

// BOSContextID implements dict.Store.
func (s *Dict) BOSContextID() int { return 0 }

// EOSContextID implements dict.Store.
func (s *Dict) EOSContextID() int { return 0 }

// Categorize implements dict.Classifier. kagome-dict assigns exactly one
// category per character. The returned slice is shared and must not be
// modified.
func (s *Dict) Categorize(r rune) []string {
	class := s.defaultCat
	if r >= 0 && int(r) < len(s.d.CharCategory) {
		class = s.d.CharCategory[r]
	}
	if int(class) >= len(s.labels) {
		return []string{dict.DefaultCategory}
	}
	return s.labels[class]
}

// Category implements dict.Classifier.
func (s *Dict) Category(name string) (dict.Category, bool) {
	c, ok := s.categories[name]
	return c, ok
}

// Categories returns the category names in class order.
func (s *Dict) Categories() []string {
	return append([]string(nil), s.d.CharClass...)
}

// resolveLayout prefers the indexes recorded in meta. Index 0 is the first
// POS column, so a zero entry counts as undefined.
func resolveLayout(meta kdict.ContentsMeta, fallback layout) layout {
	index := func(key string, def int) int {
		if v, ok := meta[key]; ok && v > 0 {
			return int(v)
		}
		return def
	}
	return layout{
		inflType: index(kdict.InflectionalType, fallback.inflType),
		inflForm: index(kdict.InflectionalForm, fallback.inflForm),
		baseForm: index(kdict.BaseFormIndex, fallback.baseForm),
		reading:  index(kdict.ReadingIndex, fallback.reading),
		phonetic: index(kdict.PronunciationIndex, fallback.phonetic),
	}
}

func pick(features []string, i int) string {
	if i < 0 || i >= len(features) || features[i] == "" {
		return "*"
	}
	return features[i]
}

func joinPOS(features []string, levels int) string {
	if levels > len(features) {
		levels = len(features)
	}
	return strings.Join(features[:levels], ",")
}
