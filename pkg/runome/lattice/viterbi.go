package lattice

import (
	"fmt"

	"github.com/cognicore/runome/pkg/runome/internalerr"
)

// Forward computes MinCost and Prev for every node, including the end of
// text node. A node's predecessors are the begin of text node (for nodes
// starting at 0) or the nodes ending where it starts, in insertion order;
// among predecessors of equal cost the first one wins.
func (la *Lattice) Forward() {
	la.bos.MinCost = 0
	la.bos.Prev = nil
	for pos := 0; pos < la.size; pos++ {
		preds := la.predecessors(pos)
		for _, n := range la.startsAt[pos] {
			la.relax(n, preds)
		}
	}
	la.relax(la.eos, la.predecessors(la.size))
}

func (la *Lattice) predecessors(pos int) []*Node {
	if pos == 0 {
		return []*Node{la.bos}
	}
	return la.endsAt[pos]
}

func (la *Lattice) relax(n *Node, preds []*Node) {
	n.Prev = nil
	n.MinCost = 0
	for _, p := range preds {
		if p != la.bos && p.Prev == nil {
			continue
		}
		cost := p.MinCost + la.store.ConnectionCost(p.RightID, n.LeftID) + n.Cost
		if n.Prev == nil || cost < n.MinCost {
			n.MinCost = cost
			n.Prev = p
		}
	}
}

// Backward returns the minimum-cost path found by Forward, without the
// begin and end of text nodes. It returns an empty path for empty input.
func (la *Lattice) Backward() ([]*Node, error) {
	if la.size == 0 {
		return nil, nil
	}
	if la.eos.Prev == nil {
		return nil, internalerr.Internalf("end of text unreachable in %q", la.input)
	}
	var path []*Node
	for n := la.eos.Prev; n != la.bos; n = n.Prev {
		if n == nil {
			return nil, fmt.Errorf("broken back-pointer chain: %w", internalerr.ErrInternal)
		}
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Cost returns the total cost of the best path. Valid after Forward.
func (la *Lattice) Cost() int { return la.eos.MinCost }

// BestPath runs Forward and Backward.
func (la *Lattice) BestPath() ([]*Node, error) {
	la.Forward()
	return la.Backward()
}
