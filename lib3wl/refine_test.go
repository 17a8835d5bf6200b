package lib3wl

import (
	"testing"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, expr string) *Graph {
	X, err := NewGraphFromString(expr)
	require.NoError(t, err, expr)
	return X
}

func computeColors(t *testing.T, X go3wl.Graph, opts go3wl.KernelOpts) go3wl.ColorCounter {
	counter, err := NewRefiner(NewDictionary(), opts).ComputeColors(X)
	require.NoError(t, err)
	return counter
}

func TestInitialColoringUnlabeled(t *testing.T) {
	opts := go3wl.KernelOpts{}

	// 6 triples of distinct nodes see all 3 edges, 18 triples with one repeat see the edge twice, 3 diagonal triples see none.
	triangle := computeColors(t, mustGraph(t, "0-1-2-0"), opts)
	require.Equal(t, go3wl.ColorCounter{3: 6, 2: 18, 0: 3}, triangle)

	empty := computeColors(t, mustGraph(t, "0,1,2"), opts)
	require.Equal(t, go3wl.ColorCounter{0: 27}, empty)

	// path 0-1-2: distinct triples see 2 edges, (a,a,b) triples see 2x or 0x the a-b edge
	path := computeColors(t, mustGraph(t, "0-1-2"), opts)
	require.Equal(t, go3wl.ColorCounter{2: 6 + 12, 0: 3 + 6}, path)
}

func TestInitialColoringLabeled(t *testing.T) {
	X := mustGraph(t, "0:1-1:2")

	pairSig := func(a, b go3wl.Label, edge go3wl.Color) go3wl.Color {
		return Pairing(Pairing(go3wl.Color(a), go3wl.Color(b)), edge)
	}

	{
		counter := computeColors(t, X, go3wl.KernelOpts{UseLabels: true})

		c001 := FoldColors(1, []go3wl.Color{pairSig(1, 1, 0), pairSig(1, 2, 1), pairSig(1, 2, 1)})
		c010 := FoldColors(1, []go3wl.Color{pairSig(1, 2, 1), pairSig(1, 1, 0), pairSig(2, 1, 1)})
		c000 := FoldColors(1, []go3wl.Color{pairSig(1, 1, 0), pairSig(1, 1, 0), pairSig(1, 1, 0)})
		require.Equal(t, uint64(1), counter[c000])
		require.Equal(t, uint64(1), counter[c001])
		require.Equal(t, uint64(1), counter[c010])
		require.Equal(t, uint64(8), counter.Total())

		// pair signatures are ordered, so (0,0,1) and (0,1,0) are distinguished by the label order of their pairs
		require.NotEqual(t, c001, c010)
	}

	{
		counter := computeColors(t, X, go3wl.KernelOpts{UseLabels: true, UseIsoType: true})

		// each node has degree 1; node 0 is labeled 1 and node 1 is labeled 2
		sig0 := Pairing(2, 2)
		sig1 := Pairing(2, 3)
		require.Equal(t, go3wl.Color(12), sig0)
		require.Equal(t, go3wl.Color(18), sig1)

		c001 := FoldColors(2, []go3wl.Color{sig0, sig0, sig1})
		c011 := FoldColors(2, []go3wl.Color{sig0, sig1, sig1})
		c000 := FoldColors(0, []go3wl.Color{sig0, sig0, sig0})
		require.Equal(t, uint64(3), counter[c001]) // (0,0,1), (0,1,0), (1,0,0)
		require.Equal(t, uint64(3), counter[c011])
		require.Equal(t, uint64(1), counter[c000])
		require.Equal(t, uint64(8), counter.Total())
	}
}

func TestIsoTypeSeesDegree(t *testing.T) {
	// A spider and a 4-cycle plus an isolated node: both triangle free with 5 nodes, 4 edges and equal sum of
	// squared degrees, so every 3-node subset histogram matches.  Only A has a node of degree 3.
	A := mustGraph(t, "4-1-0-2, 0-3")
	B := mustGraph(t, "0-1-2-3-0, 4")
	for _, X := range []*Graph{A, B} {
		for v := 0; v < 5; v++ {
			X.SetLabel(v, 0)
		}
	}

	plain := go3wl.KernelOpts{UseLabels: true}
	require.Equal(t, computeColors(t, A, plain), computeColors(t, B, plain))

	iso := go3wl.KernelOpts{UseLabels: true, UseIsoType: true}
	require.NotEqual(t, computeColors(t, A, iso), computeColors(t, B, iso))
}

func TestRefinementCounts(t *testing.T) {
	X := mustGraph(t, "0-1-2-3")
	for iters := 0; iters <= 3; iters++ {
		counter := computeColors(t, X, go3wl.KernelOpts{NumIterations: iters})
		require.Equal(t, uint64(64), counter.Total(), "round %d", iters)

		cumulative := computeColors(t, X, go3wl.KernelOpts{NumIterations: iters, Cumulative: true})
		require.Equal(t, uint64(64*(iters+1)), cumulative.Total(), "round %d", iters)
	}

	// refinement never merges color classes
	prev := 0
	for iters := 0; iters <= 3; iters++ {
		numColors := len(computeColors(t, X, go3wl.KernelOpts{NumIterations: iters}))
		require.GreaterOrEqual(t, numColors, prev)
		prev = numColors
	}
}

func TestRefinementSeparatesRegularGraphs(t *testing.T) {
	// Two 2-regular graphs on 6 nodes: a hexagon and two triangles.  1-WL cannot tell them apart; 3-WL can.
	hexagon := mustGraph(t, "0-1-2-3-4-5-0")
	triangles := mustGraph(t, "0-1-2-0, 3-4-5-3")

	opts := go3wl.KernelOpts{NumIterations: 1}
	require.False(t, computeColors(t, hexagon, opts).IsEqual(computeColors(t, triangles, opts)))
}

func TestIsomorphismInvariance(t *testing.T) {
	X := mustGraph(t, "0:1-1:2-2:1-3:3-0:1, 1:2-4:2, 5:3")
	perms := [][]int{
		{5, 4, 3, 2, 1, 0},
		{1, 2, 3, 4, 5, 0},
		{3, 0, 5, 1, 4, 2},
	}
	optsList := []go3wl.KernelOpts{
		{NumIterations: 2},
		{NumIterations: 2, UseLabels: true},
		{NumIterations: 2, UseLabels: true, UseIsoType: true},
		{NumIterations: 1, UseLabels: true, Cumulative: true},
	}

	for _, opts := range optsList {
		want := computeColors(t, X, opts)
		for _, perm := range perms {
			Y, err := X.Permute(perm)
			require.NoError(t, err)
			got := computeColors(t, Y, opts)
			require.True(t, want.IsEqual(got), "opts %+v, perm %v", opts, perm)
		}
	}
}

func TestRefinerRegistersColors(t *testing.T) {
	dict := NewDictionary()
	r := NewRefiner(dict, go3wl.KernelOpts{NumIterations: 2, Cumulative: true})

	counter, err := r.ComputeColors(mustGraph(t, "0-1-2, 3"))
	require.NoError(t, err)
	for c := range counter {
		require.True(t, dict.Contains(c))
	}
	require.Equal(t, uint32(len(counter)), dict.Size())

	// the refiner's buffers are reused across graphs of different sizes
	_, err = r.ComputeColors(mustGraph(t, "0-1"))
	require.NoError(t, err)
	_, err = r.ComputeColors(mustGraph(t, "0-1-2-3-4"))
	require.NoError(t, err)
}

func TestRefinerRejectsBadInput(t *testing.T) {
	_, err := NewRefiner(NewDictionary(), go3wl.KernelOpts{NumIterations: -1}).ComputeColors(NewGraph(2))
	require.ErrorIs(t, err, go3wl.ErrBadKernelOpts)

	_, err = NewRefiner(NewDictionary(), go3wl.KernelOpts{UseLabels: true}).ComputeColors(NewGraph(2))
	require.ErrorIs(t, err, go3wl.ErrMissingLabels)
}

func TestRefinerTinyGraphs(t *testing.T) {
	empty := computeColors(t, NewGraph(0), go3wl.KernelOpts{NumIterations: 2})
	require.Len(t, empty, 0)

	single := computeColors(t, NewGraph(1), go3wl.KernelOpts{NumIterations: 2})
	require.Equal(t, uint64(1), single.Total())
}
