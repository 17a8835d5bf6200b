package lib3wl

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Graph is a simple undirected graph over the dense node IDs 0..n-1, with optional node labels.
//
// Each node's neighbors are held as a bit set, making HasEdge a single bit test.
type Graph struct {
	adj       []*bitset.BitSet // adj[v] has bit u set iff v and u are adjacent
	labels    []go3wl.Label    // nil if unlabeled
	edgeCount int
	Expr      string // source expression, if built from InitFromString()
}

var _ go3wl.Graph = (*Graph)(nil)

// NewGraph returns an edgeless, unlabeled graph of numNodes nodes.
func NewGraph(numNodes int) *Graph {
	X := &Graph{}
	X.Init(numNodes)
	return X
}

// Init resets X to an edgeless, unlabeled graph of numNodes nodes.
func (X *Graph) Init(numNodes int) {
	X.adj = make([]*bitset.BitSet, numNodes)
	for v := range X.adj {
		X.adj[v] = bitset.New(uint(numNodes))
	}
	X.labels = nil
	X.edgeCount = 0
	X.Expr = ""
}

func (X *Graph) NumNodes() int {
	return len(X.adj)
}

func (X *Graph) NumEdges() int {
	return X.edgeCount
}

func (X *Graph) HasEdge(a, b int) bool {
	if uint(a) >= uint(len(X.adj)) || uint(b) >= uint(len(X.adj)) {
		return false
	}
	return X.adj[a].Test(uint(b))
}

func (X *Graph) Degree(v int) int {
	return int(X.adj[v].Count())
}

func (X *Graph) Labels() []go3wl.Label {
	return X.labels
}

// AddEdge connects a and b.  Adding an existing edge has no effect.
func (X *Graph) AddEdge(a, b int) error {
	n := len(X.adj)
	if a < 0 || a >= n || b < 0 || b >= n {
		return errors.Wrapf(go3wl.ErrBadNodeID, "edge %d-%d with %d nodes", a, b, n)
	}
	if a == b {
		return errors.Wrapf(go3wl.ErrSelfLoop, "node %d", a)
	}
	if !X.adj[a].Test(uint(b)) {
		X.adj[a].Set(uint(b))
		X.adj[b].Set(uint(a))
		X.edgeCount++
	}
	return nil
}

// SetLabel assigns a label to node v.  The first call gives every node the zero label.
func (X *Graph) SetLabel(v int, label go3wl.Label) error {
	n := len(X.adj)
	if v < 0 || v >= n {
		return errors.Wrapf(go3wl.ErrBadNodeID, "node %d with %d nodes", v, n)
	}
	if X.labels == nil {
		X.labels = make([]go3wl.Label, n)
	}
	X.labels[v] = label
	return nil
}

// Permute returns a copy of X where node v is renamed perm[v].
func (X *Graph) Permute(perm []int) (*Graph, error) {
	n := len(X.adj)
	if len(perm) != n {
		return nil, errors.Wrapf(go3wl.ErrBadNodeID, "permutation of length %d for %d nodes", len(perm), n)
	}
	seen := bitset.New(uint(n))
	for _, pv := range perm {
		if pv < 0 || pv >= n || seen.Test(uint(pv)) {
			return nil, errors.Wrapf(go3wl.ErrBadNodeID, "%v is not a permutation", perm)
		}
		seen.Set(uint(pv))
	}

	Y := NewGraph(n)
	for a := 0; a < n; a++ {
		for b, ok := X.adj[a].NextSet(uint(a + 1)); ok; b, ok = X.adj[a].NextSet(b + 1) {
			if err := Y.AddEdge(perm[a], perm[b]); err != nil {
				return nil, err
			}
		}
		if X.labels != nil {
			Y.SetLabel(perm[a], X.labels[a])
		}
	}
	return Y, nil
}

// WriteAsString prints X as an edge list expression readable by InitFromString().
func (X *Graph) WriteAsString(out io.Writer) {
	var b strings.Builder
	n := len(X.adj)
	writeNode := func(v int) {
		fmt.Fprintf(&b, "%d", v)
		if X.labels != nil {
			fmt.Fprintf(&b, ":%d", X.labels[v])
		}
	}
	for a := 0; a < n; a++ {
		for u, ok := X.adj[a].NextSet(uint(a + 1)); ok; u, ok = X.adj[a].NextSet(u + 1) {
			if b.Len() > 0 {
				b.WriteString(",")
			}
			writeNode(a)
			b.WriteString("-")
			writeNode(int(u))
		}
	}
	for v := 0; v < n; v++ {
		if X.adj[v].None() {
			if b.Len() > 0 {
				b.WriteString(",")
			}
			writeNode(v)
		}
	}
	io.WriteString(out, b.String())
}

func (X *Graph) String() string {
	var b strings.Builder
	X.WriteAsString(&b)
	return b.String()
}

// ValidateGraph rejects a graph that violates what the kernel assumes of its input:
// symmetric, loop free edges, degrees consistent with edges, and (if useLabels) a label for every node.
func ValidateGraph(g go3wl.Graph, useLabels bool) error {
	if g == nil {
		return go3wl.ErrNilGraph
	}
	n := g.NumNodes()
	if n < 0 {
		return errors.Wrapf(go3wl.ErrBadNodeID, "negative node count %d", n)
	}
	if useLabels {
		if labels := g.Labels(); len(labels) != n {
			return errors.Wrapf(go3wl.ErrMissingLabels, "%d labels for %d nodes", len(labels), n)
		}
	}
	for a := 0; a < n; a++ {
		if g.HasEdge(a, a) {
			return errors.Wrapf(go3wl.ErrSelfLoop, "node %d", a)
		}
		degree := 0
		for b := 0; b < n; b++ {
			if g.HasEdge(a, b) {
				if !g.HasEdge(b, a) {
					return errors.Wrapf(go3wl.ErrAsymmetricEdge, "edge %d-%d", a, b)
				}
				degree++
			}
		}
		if degree != g.Degree(a) {
			return errors.Wrapf(go3wl.ErrBadDegree, "node %d reports degree %d but has %d neighbors", a, g.Degree(a), degree)
		}
	}
	return nil
}
