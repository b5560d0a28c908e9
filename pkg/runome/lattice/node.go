// Package lattice builds the candidate trellis for a text and finds its
// minimum-cost segmentation.
package lattice

import "fmt"

// Class tells where a node's morpheme data came from.
type Class int

const (
	// Known nodes are backed by a dictionary entry.
	Known Class = iota
	// Unknown nodes are synthesized from character category templates.
	Unknown
	// User nodes are backed by a user dictionary entry.
	User
	// Virtual marks the begin and end of text nodes.
	Virtual
)

func (c Class) String() string {
	switch c {
	case Known:
		return "known"
	case Unknown:
		return "unknown"
	case User:
		return "user"
	case Virtual:
		return "virtual"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Node is a morpheme candidate covering the rune span [Start, End).
type Node struct {
	// ID is the dictionary entry id for Known and User nodes, -1 otherwise.
	ID    int
	Class Class
	Start int
	End   int

	Surface string
	LeftID  int
	RightID int
	Cost    int
	// POS is set on Unknown nodes only; dictionary nodes resolve it
	// through the store by ID.
	POS string

	// MinCost is the best cumulative cost of a path from the begin of text
	// through this node, and Prev its predecessor on that path.
	MinCost int
	Prev    *Node
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[%d:%d](%s)", n.Surface, n.Start, n.End, n.Class)
}
