package go3wl

// Color is a canonical signature of an ordered node triple at a given refinement round.
// Colors are opaque outside of the refinement engine: only equality is meaningful.
type Color uint64

// Label is an optional per-node integer label assigned by a graph loader.
type Label uint64

// Graph is an immutable, simple, undirected graph whose nodes are the dense integers 0..NumNodes()-1.
type Graph interface {

	// NumNodes returns the number of nodes.  Node IDs are 0..NumNodes()-1.
	NumNodes() int

	// HasEdge returns true if nodes a and b are adjacent.  HasEdge(v, v) is always false.
	HasEdge(a, b int) bool

	// Degree returns the number of neighbors of node v.
	Degree(v int) int

	// Labels returns the per-node labels, indexed by node ID, or nil if this graph is unlabeled.
	Labels() []Label
}

// ColorCounter maps a Color to the number of triples assigned that color.
type ColorCounter map[Color]uint64

// Dictionary maps each Color seen during a run to a dense feature column.
//
// A Dictionary is the only state shared across the graphs of a run: every graph of a run must be
// colored against the same instance so that equal colors in different graphs land in the same column.
type Dictionary interface {

	// Insert returns the column for c, issuing the next unused column if c has not been seen.
	// Insert is idempotent and a column once issued never changes.
	Insert(c Color) uint32

	// Lookup returns the column for c and true, or false if c was never inserted.
	Lookup(c Color) (uint32, bool)

	// Contains returns true if c was previously inserted.
	Contains(c Color) bool

	// Size returns the number of distinct colors inserted so far (the feature dimension).
	Size() uint32

	// Close releases any resources held by this Dictionary.
	Close() error
}

// KernelOpts specifies params for computing a kernel over a graph database.
type KernelOpts struct {
	NumIterations int  // number of refinement rounds after the initial coloring (>= 0)
	UseLabels     bool // if set, node labels participate in the initial coloring
	UseIsoType    bool // if set (and UseLabels is set), the initial coloring also encodes node degrees
	Cumulative    bool // if set, a graph's features are the color counts of all rounds rather than only the last
	Normalize     bool // if set, the Gram matrix is cosine normalized
	Workers       int  // number of graphs refined concurrently (0 or 1 denotes sequential)
}

// DefaultKernelOpts refines for 3 rounds without labels.
var DefaultKernelOpts = KernelOpts{
	NumIterations: 3,
}

// PrintOpts specifies what is printed when writing a Gram matrix.
type PrintOpts struct {
	Label     string // Prefix label
	Precision int    // digits after the decimal point (-1 denotes shortest exact representation)
	Header    bool   // if set, a header row of graph indices is printed
}

// DefaultPrintOpts prints values in their shortest exact form.
var DefaultPrintOpts = PrintOpts{
	Precision: -1,
}
