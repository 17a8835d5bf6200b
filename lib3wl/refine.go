package lib3wl

import (
	"github.com/2x3systems/go3wl/go3wl"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Refiner computes the color distribution of a graph's node triples under 3-dimensional color refinement.
//
// A Refiner holds scratch buffers reused across graphs and so must not be shared between goroutines.
// Every color it produces is registered in its Dictionary.
type Refiner struct {
	opts      go3wl.KernelOpts
	dict      go3wl.Dictionary
	cur       []go3wl.Color // coloring of the current round, indexed by triple index
	next      []go3wl.Color // coloring being built for the next round
	neighbors []go3wl.Color
}

func NewRefiner(dict go3wl.Dictionary, opts go3wl.KernelOpts) *Refiner {
	return &Refiner{
		opts: opts,
		dict: dict,
	}
}

func (r *Refiner) Dictionary() go3wl.Dictionary {
	return r.dict
}

func (r *Refiner) reset(numTriples int) {
	if cap(r.cur) < numTriples {
		r.cur = make([]go3wl.Color, numTriples)
		r.next = make([]go3wl.Color, numTriples)
	} else {
		r.cur = r.cur[:numTriples]
		r.next = r.next[:numTriples]
	}
}

func (r *Refiner) register(counter go3wl.ColorCounter, c go3wl.Color) {
	r.dict.Insert(c)
	counter[c]++
}

// ComputeColors colors every ordered triple of g and refines the coloring for opts.NumIterations rounds.
//
// The returned counter is the color distribution of the last round, or of all rounds combined if opts.Cumulative is set.
func (r *Refiner) ComputeColors(g go3wl.Graph) (go3wl.ColorCounter, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateGraph(g, r.opts.UseLabels); err != nil {
		return nil, err
	}

	n := g.NumNodes()
	idx := NewTripleIndex(n)
	r.reset(idx.NumTriples())

	var labels []go3wl.Label
	if r.opts.UseLabels {
		labels = g.Labels()
	}

	counter := make(go3wl.ColorCounter)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				c := r.initialColor(g, labels, i, j, k)
				r.cur[idx.IndexOf(i, j, k)] = c
				r.register(counter, c)
			}
		}
	}
	klog.V(3).Infof("initial coloring: %d nodes, %d triples, %d colors", n, idx.NumTriples(), len(counter))

	var total go3wl.ColorCounter
	if r.opts.Cumulative {
		total = make(go3wl.ColorCounter, len(counter))
		total.Merge(counter)
	}

	for h := 1; h <= r.opts.NumIterations; h++ {
		numColorsBefore := len(counter)
		counter = r.refineRound(idx)
		klog.V(3).Infof("round %d: %d colors (was %d)", h, len(counter), numColorsBefore)
		if total != nil {
			total.Merge(counter)
		}
	}

	if total != nil {
		return total, nil
	}
	return counter, nil
}

// initialColor returns the round 0 color of (i, j, k).
func (r *Refiner) initialColor(g go3wl.Graph, labels []go3wl.Label, i, j, k int) go3wl.Color {
	eij := edgeColor(g, i, j)
	eik := edgeColor(g, i, k)
	ejk := edgeColor(g, j, k)

	if labels == nil {
		return eij + eik + ejk
	}

	ci := go3wl.Color(labels[i])
	cj := go3wl.Color(labels[j])
	ck := go3wl.Color(labels[k])

	var sig [3]go3wl.Color
	if r.opts.UseIsoType {
		sig[0] = Pairing(go3wl.Color(g.Degree(i)+1), ci+1)
		sig[1] = Pairing(go3wl.Color(g.Degree(j)+1), cj+1)
		sig[2] = Pairing(go3wl.Color(g.Degree(k)+1), ck+1)
		return FoldColors(eij+eik+ejk, sig[:])
	}

	sig[0] = Pairing(Pairing(ci, cj), eij)
	sig[1] = Pairing(Pairing(ci, ck), eik)
	sig[2] = Pairing(Pairing(cj, ck), ejk)
	return FoldColors(1, sig[:])
}

func edgeColor(g go3wl.Graph, a, b int) go3wl.Color {
	if a != b && g.HasEdge(a, b) {
		return 1
	}
	return 0
}

// refineRound recolors every triple from the colors of the 3(n-1) triples that differ from it in exactly one
// coordinate, then swaps the current and next colorings.
func (r *Refiner) refineRound(idx TripleIndex) go3wl.ColorCounter {
	n := idx.NumNodes()
	numTriples := idx.NumTriples()
	counter := make(go3wl.ColorCounter)

	if cap(r.neighbors) < 3*n {
		r.neighbors = make([]go3wl.Color, 0, 3*n)
	}

	for ti := 0; ti < numTriples; ti++ {
		t := idx.TripleAt(ti)
		neighbors := r.neighbors[:0]

		for coord := 0; coord < 3; coord++ {
			stride := idx.Stride(coord)
			base := ti - t[coord]*stride
			for c := 0; c < n; c++ {
				if c != t[coord] {
					neighbors = append(neighbors, r.cur[base+c*stride])
				}
			}
		}
		if len(neighbors) != 3*(n-1) {
			panic(errors.Wrapf(go3wl.ErrTripleLookup, "triple %v gathered %d neighbors", t, len(neighbors)))
		}

		c := FoldColors(r.cur[ti], neighbors)
		r.next[ti] = c
		r.register(counter, c)
		r.neighbors = neighbors
	}

	r.cur, r.next = r.next, r.cur
	return counter
}
