package memdict

import (
	"sort"
	"unicode/utf8"

	"github.com/cognicore/runome/pkg/runome/dict"
)

// Dict is an in-memory implementation of dict.Store.
// Populate it before handing it to a tokenizer; it is not safe to mutate
// while tokenizing.
type Dict struct {
	entries []dict.Entry
	index   map[string][]int
	maxLen  int
	matrix  Matrix
	bos     int
	eos     int
}

// New creates an empty dictionary using the given connection matrix.
func New(matrix Matrix) *Dict {
	return &Dict{
		index:  make(map[string][]int),
		matrix: matrix,
	}
}

// Add appends an entry and returns its id.
// Entries without a surface are ignored and get id -1.
func (d *Dict) Add(e dict.Entry) int {
	if e.Surface == "" {
		return -1
	}
	id := len(d.entries)
	d.entries = append(d.entries, e)
	d.index[e.Surface] = append(d.index[e.Surface], id)
	if len(e.Surface) > d.maxLen {
		d.maxLen = len(e.Surface)
	}
	return id
}

// SetContextIDs sets the context ids of the begin/end-of-text virtual nodes.
func (d *Dict) SetContextIDs(bos, eos int) {
	d.bos = bos
	d.eos = eos
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Entries returns a copy of all entries in id order.
func (d *Dict) Entries() []dict.Entry {
	out := make([]dict.Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Matrix returns the connection matrix.
func (d *Dict) Matrix() Matrix { return d.matrix }

// Lookup implements dict.Store.
func (d *Dict) Lookup(input string) []dict.Match {
	var matches []dict.Match
	limit := min(len(input), d.maxLen)
	for end := 1; end <= limit; end++ {
		if end < len(input) && !utf8.RuneStart(input[end]) {
			continue
		}
		ids, ok := d.index[input[:end]]
		if !ok {
			continue
		}
		for _, id := range ids {
			e := d.entries[id]
			matches = append(matches, dict.Match{
				ID:      id,
				Length:  end,
				LeftID:  e.LeftID,
				RightID: e.RightID,
				Cost:    e.Cost,
			})
		}
	}
	return matches
}

// Entry implements dict.Store.
func (d *Dict) Entry(id int) dict.Entry {
	if id < 0 || id >= len(d.entries) {
		return dict.Entry{}
	}
	return d.entries[id]
}

// ConnectionCost implements dict.Store.
func (d *Dict) ConnectionCost(prevRightID, nextLeftID int) int {
	return d.matrix.At(prevRightID, nextLeftID)
}

// BOSContextID implements dict.Store.
func (d *Dict) BOSContextID() int { return d.bos }

// EOSContextID implements dict.Store.
func (d *Dict) EOSContextID() int { return d.eos }

// Surfaces returns the distinct surfaces, sorted.
func (d *Dict) Surfaces() []string {
	out := make([]string, 0, len(d.index))
	for s := range d.index {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Matrix is a dense connection cost table indexed by
// [previous right context id][next left context id].
// Costs outside the table are zero.
type Matrix struct {
	Rows  int
	Cols  int
	Costs []int
}

// NewMatrix creates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Costs: make([]int, rows*cols)}
}

// At returns the cost of connecting right context id to left context id.
func (m Matrix) At(right, left int) int {
	if right < 0 || left < 0 || right >= m.Rows || left >= m.Cols {
		return 0
	}
	return m.Costs[right*m.Cols+left]
}

// Set stores a connection cost. Out-of-range ids are ignored.
func (m Matrix) Set(right, left, cost int) {
	if right < 0 || left < 0 || right >= m.Rows || left >= m.Cols {
		return
	}
	m.Costs[right*m.Cols+left] = cost
}
