package lib3wl

import (
	"sort"

	"github.com/2x3systems/go3wl/go3wl"
)

// Pairing is the Cantor pairing function, an injection of (a, b) into a single Color:
//
//	Pairing(a, b) = (a+b)(a+b+1)/2 + b
//
// Pairing is not commutative.  Arithmetic is 64-bit and wraps, so Pairing is only a true injection while
// (a+b)(a+b+1)/2 + b < 2^64.  Each fold roughly squares its input, so refined colors pass that ceiling within
// the first round on all but the smallest graphs.  Past it, colors remain deterministic and isomorphism
// invariant, and for a fixed b the map a -> Pairing(a, b) remains injective (a fold never merges distinct
// seeds), but two distinct neighbor multisets may collide with probability on the order of 2^-64.
func Pairing(a, b go3wl.Color) go3wl.Color {
	s := a + b
	if s&1 == 0 {
		return (s/2)*(s+1) + b
	}
	return s*(s/2+1) + b
}

// FoldColors sorts colors in place and then folds them left to right into seed using Pairing.
//
// Sorting first is what makes the result independent of the order in which the multiset was gathered.
func FoldColors(seed go3wl.Color, colors []go3wl.Color) go3wl.Color {
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	for _, c := range colors {
		seed = Pairing(seed, c)
	}
	return seed
}
