package lib3wl

import (
	"github.com/2x3systems/go3wl/go3wl"
	"github.com/alecthomas/participle/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// GraphExpr is a comma separated list of node runs, e.g. "0-1-2, 2-3, 4" or "0:7-1:7-2:3".
type GraphExpr struct {
	Runs []*NodeRun `(@@ ("," @@)*)?`
}

// NodeRun is a path of one or more nodes; each consecutive pair is an edge.
type NodeRun struct {
	Start *NodeRef   `@@`
	Hops  []*NodeRef `("-" @@)*`
}

// NodeRef names a node, optionally assigning it a label.
type NodeRef struct {
	ID      int    `@Int`
	Labeled bool   `( @":"`
	Label   uint64 `  @Int )?`
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

type graphBuilder struct {
	numNodes int
	seen     *bitset.BitSet
	labeled  *bitset.BitSet
	labels   map[int]go3wl.Label
	edges    [][2]int
}

func (Xb *graphBuilder) tallyNode(ref *NodeRef) error {
	if ref.ID < 0 {
		return errors.Wrapf(go3wl.ErrBadNodeID, "node %d", ref.ID)
	}
	if Xb.numNodes <= ref.ID {
		Xb.numNodes = ref.ID + 1
	}
	Xb.seen.Set(uint(ref.ID))

	if ref.Labeled {
		label := go3wl.Label(ref.Label)
		if Xb.labeled.Test(uint(ref.ID)) && Xb.labels[ref.ID] != label {
			return errors.Wrapf(go3wl.ErrLabelConflict, "node %d labeled %d and %d", ref.ID, Xb.labels[ref.ID], label)
		}
		Xb.labeled.Set(uint(ref.ID))
		Xb.labels[ref.ID] = label
	}
	return nil
}

func (Xb *graphBuilder) applyRun(run *NodeRun) error {
	onNode := run.Start
	if err := Xb.tallyNode(onNode); err != nil {
		return err
	}
	for _, nextNode := range run.Hops {
		if err := Xb.tallyNode(nextNode); err != nil {
			return err
		}
		Xb.edges = append(Xb.edges, [2]int{onNode.ID, nextNode.ID})
		onNode = nextNode
	}
	return nil
}

// InitFromString resets X to the graph described by graphExpr.
//
// Node IDs must be dense: every ID below the largest one must appear somewhere in the expression.
// If any node is given a label, nodes not given one are labeled 0.
func (X *Graph) InitFromString(graphExpr string) error {
	Xexpr, err := parseGraphExpr.ParseString("", graphExpr)
	if err != nil {
		return errors.Wrap(go3wl.ErrBadEncoding, err.Error())
	}

	Xb := graphBuilder{
		seen:    bitset.New(32),
		labeled: bitset.New(32),
		labels:  make(map[int]go3wl.Label),
	}
	for ri, run := range Xexpr.Runs {
		if err = Xb.applyRun(run); err != nil {
			return errors.Wrapf(err, "error reading run #%d", ri+1)
		}
	}

	if int(Xb.seen.Count()) != Xb.numNodes {
		missing, _ := Xb.seen.NextClear(0)
		return errors.Wrapf(go3wl.ErrNotDense, "node %d missing from %q", missing, graphExpr)
	}

	X.Init(Xb.numNodes)
	for _, edge := range Xb.edges {
		if err = X.AddEdge(edge[0], edge[1]); err != nil {
			return err
		}
	}
	for v, label := range Xb.labels {
		X.SetLabel(v, label)
	}
	X.Expr = graphExpr
	return nil
}

// NewGraphFromString is a convenience for NewGraph() followed by InitFromString().
func NewGraphFromString(graphExpr string) (*Graph, error) {
	X := &Graph{}
	if err := X.InitFromString(graphExpr); err != nil {
		return nil, err
	}
	return X, nil
}
