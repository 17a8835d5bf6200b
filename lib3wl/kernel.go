package lib3wl

import (
	"github.com/2x3systems/go3wl/go3wl"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Kernel is the context of one kernel run: its options and the Dictionary shared by all graphs of the run.
type Kernel struct {
	opts go3wl.KernelOpts
	dict go3wl.Dictionary
}

// NewKernel returns a Kernel that registers colors in dict.  If dict is nil, a new in-memory dictionary is used.
func NewKernel(dict go3wl.Dictionary, opts go3wl.KernelOpts) (*Kernel, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if dict == nil {
		dict = NewDictionary()
	}
	return &Kernel{
		opts: opts,
		dict: dict,
	}, nil
}

func (k *Kernel) Opts() go3wl.KernelOpts {
	return k.opts
}

func (k *Kernel) Dictionary() go3wl.Dictionary {
	return k.dict
}

// ComputeColors returns the color distribution of each graph in db, in order.
func (k *Kernel) ComputeColors(db []go3wl.Graph) ([]go3wl.ColorCounter, error) {
	for gi, g := range db {
		if err := ValidateGraph(g, k.opts.UseLabels); err != nil {
			return nil, errors.Wrapf(err, "graph %d", gi)
		}
	}

	if k.opts.Workers > 1 && len(db) > 1 {
		return k.computeColorsParallel(db)
	}

	counters := make([]go3wl.ColorCounter, len(db))
	r := NewRefiner(k.dict, k.opts)
	for gi, g := range db {
		counter, err := r.ComputeColors(g)
		if err != nil {
			return nil, errors.Wrapf(err, "graph %d", gi)
		}
		counters[gi] = counter
		klog.V(2).Infof("graph %d: %d nodes, %d colors, dictionary size %d", gi, g.NumNodes(), len(counter), k.dict.Size())
	}
	return counters, nil
}

// computeColorsParallel refines each graph against a private dictionary, then merges the private dictionaries
// into the shared one in graph order.  Since each private dictionary lists colors in first-seen order, the
// shared dictionary ends up exactly as a sequential run would leave it.
func (k *Kernel) computeColorsParallel(db []go3wl.Graph) ([]go3wl.ColorCounter, error) {
	counters := make([]go3wl.ColorCounter, len(db))
	scratch := make([]*LabelDictionary, len(db))

	var group errgroup.Group
	group.SetLimit(k.opts.Workers)
	for gi := range db {
		gi := gi
		group.Go(func() error {
			dict := NewDictionary()
			counter, err := NewRefiner(dict, k.opts).ComputeColors(db[gi])
			if err != nil {
				return errors.Wrapf(err, "graph %d", gi)
			}
			counters[gi] = counter
			scratch[gi] = dict
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for gi, dict := range scratch {
		dict.MergeInto(k.dict)
		klog.V(2).Infof("graph %d: %d nodes, %d colors, dictionary size %d", gi, db[gi].NumNodes(), len(counters[gi]), k.dict.Size())
	}
	return counters, nil
}

// ComputeGramMatrix returns the (optionally normalized) Gram matrix of the graphs in db.
func (k *Kernel) ComputeGramMatrix(db []go3wl.Graph) (*mat.SymDense, error) {
	counters, err := k.ComputeColors(db)
	if err != nil {
		return nil, err
	}

	F, err := BuildFeatureMatrix(counters, k.dict)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("feature matrix: %d graphs x %d colors", F.NumRows(), F.NumCols)

	K := F.Gram()
	if k.opts.Normalize {
		K = NormalizeGram(K)
	}
	return K, nil
}

// ComputeGramMatrix is a convenience that runs a new Kernel with its own in-memory dictionary.
func ComputeGramMatrix(db []go3wl.Graph, opts go3wl.KernelOpts) (*mat.SymDense, error) {
	k, err := NewKernel(nil, opts)
	if err != nil {
		return nil, err
	}
	return k.ComputeGramMatrix(db)
}
