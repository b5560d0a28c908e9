package lattice

import (
	"slices"

	"github.com/cognicore/runome/pkg/runome/dict"
	"github.com/cognicore/runome/pkg/runome/internalerr"
)

// DefaultMaxUnknownLength bounds grouped unknown words when Options leaves
// MaxUnknownLength unset.
const DefaultMaxUnknownLength = 1024

// Options controls candidate generation.
type Options struct {
	// MaxUnknownLength caps grouped unknown words, in runes.
	MaxUnknownLength int
}

// Lattice holds every candidate node of one input, indexed by the rune
// position where each node starts and where it ends.
type Lattice struct {
	input    string
	store    dict.Store
	startsAt [][]*Node
	endsAt   [][]*Node
	bos      *Node
	eos      *Node
	size     int
}

// Build enumerates the candidate nodes of input. Every rune position gets
// at least one candidate starting there. Invalid UTF-8 bytes are treated as
// single-rune characters.
func Build(input string, store dict.Store, classifier dict.Classifier, opts Options) (*Lattice, error) {
	maxUnk := opts.MaxUnknownLength
	if maxUnk <= 0 {
		maxUnk = DefaultMaxUnknownLength
	}

	// offsets[i] is the byte offset of rune i; offsets[n] == len(input).
	var runes []rune
	var offsets []int
	for i, r := range input {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	n := len(runes)
	offsets = append(offsets, len(input))

	runeAt := make(map[int]int, n+1)
	for i, off := range offsets {
		runeAt[off] = i
	}

	la := &Lattice{
		input:    input,
		store:    store,
		startsAt: make([][]*Node, n),
		endsAt:   make([][]*Node, n+1),
		size:     n,
	}
	la.bos = &Node{ID: -1, Class: Virtual, LeftID: store.BOSContextID(), RightID: store.BOSContextID()}
	la.eos = &Node{ID: -1, Class: Virtual, Start: n, End: n, LeftID: store.EOSContextID(), RightID: store.EOSContextID()}

	for pos := 0; pos < n; pos++ {
		head := offsets[pos]
		matched := false
		for _, m := range store.Lookup(input[head:]) {
			end, ok := runeAt[head+m.Length]
			if !ok || end <= pos {
				continue
			}
			matched = true
			la.add(&Node{
				ID:      m.ID,
				Class:   Known,
				Start:   pos,
				End:     end,
				Surface: input[head:offsets[end]],
				LeftID:  m.LeftID,
				RightID: m.RightID,
				Cost:    m.Cost,
			})
		}

		for _, name := range classifier.Categorize(runes[pos]) {
			cat, ok := classifier.Category(name)
			if !ok || (matched && !cat.Invoke) {
				continue
			}
			end := pos + 1
			if cat.Group {
				limit := maxUnk
				if cat.Length > 0 && cat.Length < limit {
					limit = cat.Length
				}
				for end < n && end-pos < limit && slices.Contains(classifier.Categorize(runes[end]), name) {
					end++
				}
			}
			la.addUnknown(pos, end, input[head:offsets[end]], cat.Templates)
		}

		if len(la.startsAt[pos]) == 0 {
			cat, _ := classifier.Category(dict.DefaultCategory)
			la.addUnknown(pos, pos+1, input[head:offsets[pos+1]], cat.Templates)
		}
		if len(la.startsAt[pos]) == 0 {
			return nil, internalerr.Internalf("no candidate at rune %d of %q", pos, input)
		}
	}
	return la, nil
}

func (la *Lattice) addUnknown(start, end int, surface string, templates []dict.Template) {
	if len(templates) == 0 {
		templates = []dict.Template{dict.FallbackTemplate}
	}
	for _, t := range templates {
		la.add(&Node{
			ID:      -1,
			Class:   Unknown,
			Start:   start,
			End:     end,
			Surface: surface,
			LeftID:  t.LeftID,
			RightID: t.RightID,
			Cost:    t.Cost,
			POS:     t.POS,
		})
	}
}

func (la *Lattice) add(n *Node) {
	la.startsAt[n.Start] = append(la.startsAt[n.Start], n)
	la.endsAt[n.End] = append(la.endsAt[n.End], n)
}

// Len returns the input length in runes.
func (la *Lattice) Len() int { return la.size }

// Input returns the text the lattice was built from.
func (la *Lattice) Input() string { return la.input }

// StartsAt returns the candidates starting at rune position i in
// insertion order.
func (la *Lattice) StartsAt(i int) []*Node {
	if i < 0 || i >= len(la.startsAt) {
		return nil
	}
	return la.startsAt[i]
}

// EndsAt returns the candidates ending at rune position i in insertion
// order. The begin of text node is not included.
func (la *Lattice) EndsAt(i int) []*Node {
	if i < 0 || i >= len(la.endsAt) {
		return nil
	}
	return la.endsAt[i]
}
