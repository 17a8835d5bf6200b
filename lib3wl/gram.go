package lib3wl

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FeatureEntry is a nonzero component of a FeatureVector.
type FeatureEntry struct {
	Col   uint32
	Count uint64
}

// FeatureVector is a sparse count vector, sorted by ascending Col.
type FeatureVector []FeatureEntry

// FeatureMatrix is a sparse (graph x color) count matrix.
type FeatureMatrix struct {
	Rows    []FeatureVector
	NumCols int
}

// BuildFeatureMatrix places each graph's counter into a row, mapping each color to its dictionary column.
//
// Every color of every counter must already be in dict; a missing one means color bookkeeping is broken.
func BuildFeatureMatrix(counters []go3wl.ColorCounter, dict go3wl.Dictionary) (*FeatureMatrix, error) {
	F := &FeatureMatrix{
		Rows:    make([]FeatureVector, len(counters)),
		NumCols: int(dict.Size()),
	}

	for gi, counter := range counters {
		row := redblacktree.NewWith(utils.UInt32Comparator)
		for c, count := range counter {
			col, found := dict.Lookup(c)
			if !found {
				return nil, errors.Wrapf(go3wl.ErrColorUnregistered, "graph %d, color %d", gi, c)
			}
			if int(col) >= F.NumCols {
				return nil, errors.Wrapf(go3wl.ErrDictionaryCorrupt, "column %d issued past size %d", col, F.NumCols)
			}
			row.Put(col, count)
		}

		vec := make(FeatureVector, 0, row.Size())
		itr := row.Iterator()
		for itr.Next() {
			vec = append(vec, FeatureEntry{
				Col:   itr.Key().(uint32),
				Count: itr.Value().(uint64),
			})
		}
		F.Rows[gi] = vec
	}

	return F, nil
}

// NumRows returns the number of graphs.
func (F *FeatureMatrix) NumRows() int {
	return len(F.Rows)
}

// At returns the count at (row, col).
func (F *FeatureMatrix) At(row int, col uint32) uint64 {
	vec := F.Rows[row]
	lo, hi := 0, len(vec)
	for lo < hi {
		mid := (lo + hi) / 2
		if vec[mid].Col < col {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(vec) && vec[lo].Col == col {
		return vec[lo].Count
	}
	return 0
}

// Dot returns the inner product of A and B.
func (A FeatureVector) Dot(B FeatureVector) uint64 {
	dot := uint64(0)
	ai, bi := 0, 0
	for ai < len(A) && bi < len(B) {
		switch {
		case A[ai].Col < B[bi].Col:
			ai++
		case A[ai].Col > B[bi].Col:
			bi++
		default:
			dot += A[ai].Count * B[bi].Count
			ai++
			bi++
		}
	}
	return dot
}

// Gram returns F * F^T.
//
// Entries are exact while each inner product stays below 2^53.
func (F *FeatureMatrix) Gram() *mat.SymDense {
	N := len(F.Rows)
	if N == 0 {
		return &mat.SymDense{}
	}
	K := mat.NewSymDense(N, nil)
	for i := 0; i < N; i++ {
		for j := i; j < N; j++ {
			K.SetSym(i, j, float64(F.Rows[i].Dot(F.Rows[j])))
		}
	}
	return K
}

// NormalizeGram returns the cosine normalization of K: K[i][j] / sqrt(K[i][i] * K[j][j]).
// Entries involving a zero self-kernel are zero.
func NormalizeGram(K mat.Symmetric) *mat.SymDense {
	N := K.SymmetricDim()
	if N == 0 {
		return &mat.SymDense{}
	}
	norm := make([]float64, N)
	for i := range norm {
		norm[i] = math.Sqrt(K.At(i, i))
	}

	Kn := mat.NewSymDense(N, nil)
	for i := 0; i < N; i++ {
		for j := i; j < N; j++ {
			if d := norm[i] * norm[j]; d > 0 {
				Kn.SetSym(i, j, K.At(i, j)/d)
			}
		}
	}
	return Kn
}

// WriteGram prints K one row per line with space separated entries.
func WriteGram(out io.Writer, K mat.Symmetric, opts go3wl.PrintOpts) {
	N := K.SymmetricDim()
	buf := strings.Builder{}
	buf.Grow(16 * (N + 1))

	if opts.Header {
		if len(opts.Label) > 0 {
			buf.WriteString(opts.Label)
		}
		for j := 0; j < N; j++ {
			buf.WriteByte(' ')
			buf.WriteString(strconv.Itoa(j))
		}
		buf.WriteByte('\n')
	}

	for i := 0; i < N; i++ {
		if opts.Header {
			buf.WriteString(strconv.Itoa(i))
			buf.WriteByte(' ')
		} else if len(opts.Label) > 0 {
			buf.WriteString(opts.Label)
		}
		for j := 0; j < N; j++ {
			if j > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(strconv.FormatFloat(K.At(i, j), 'f', opts.Precision, 64))
		}
		buf.WriteByte('\n')
		io.WriteString(out, buf.String())
		buf.Reset()
	}
}
