package lib3wl

import (
	"github.com/2x3systems/go3wl/go3wl"
	"github.com/pkg/errors"
)

// Triple is an ordered triple of node IDs from one graph; coordinates may repeat.
type Triple [3]int

// TripleIndex maps each of the n³ ordered triples over n nodes to a dense index and back.
//
// The index of (i, j, k) is (i*n + j)*n + k, so triples sharing a prefix are contiguous
// and substituting coordinate 2 walks consecutive indices.
type TripleIndex struct {
	n int
}

func NewTripleIndex(numNodes int) TripleIndex {
	return TripleIndex{
		n: numNodes,
	}
}

// NumNodes returns the number of nodes this index spans.
func (idx TripleIndex) NumNodes() int {
	return idx.n
}

// NumTriples returns n³.
func (idx TripleIndex) NumTriples() int {
	return idx.n * idx.n * idx.n
}

// IndexOf returns the dense index of (i, j, k).
//
// A coordinate outside [0, n) means the caller's bookkeeping is broken, so IndexOf panics.
func (idx TripleIndex) IndexOf(i, j, k int) int {
	n := idx.n
	if uint(i) >= uint(n) || uint(j) >= uint(n) || uint(k) >= uint(n) {
		panic(errors.Wrapf(go3wl.ErrTripleLookup, "(%d, %d, %d) with %d nodes", i, j, k, n))
	}
	return (i*n+j)*n + k
}

// TripleAt is the inverse of IndexOf.
func (idx TripleIndex) TripleAt(ti int) Triple {
	n := idx.n
	if ti < 0 || ti >= idx.NumTriples() {
		panic(errors.Wrapf(go3wl.ErrTripleLookup, "index %d with %d nodes", ti, n))
	}
	return Triple{ti / (n * n), (ti / n) % n, ti % n}
}

// Stride returns the index distance between two triples that differ by 1 in the given coordinate.
func (idx TripleIndex) Stride(coord int) int {
	switch coord {
	case 0:
		return idx.n * idx.n
	case 1:
		return idx.n
	case 2:
		return 1
	}
	panic(errors.Wrapf(go3wl.ErrTripleLookup, "coordinate %d", coord))
}
