package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/2x3systems/go3wl/lib3wl"
	"github.com/2x3systems/go3wl/lib3wl/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"gopkg.in/yaml.v3"
)

// KernelFile is a YAML run file, e.g.
//
//	iterations: 2
//	use_labels: true
//	normalize: true
//	graphs:
//	  - "0:1-1:1-2:2"
//	  - "0:2-1:1-2:1"
type KernelFile struct {
	Iterations int      `yaml:"iterations"`
	UseLabels  bool     `yaml:"use_labels"`
	UseIsoType bool     `yaml:"use_iso_type"`
	Cumulative bool     `yaml:"cumulative"`
	Normalize  bool     `yaml:"normalize"`
	Workers    int      `yaml:"workers"`
	Catalog    string   `yaml:"catalog"`   // badger dir of a persistent color catalog; omit for in-memory
	Precision  int      `yaml:"precision"` // digits printed after the decimal point
	Graphs     []string `yaml:"graphs"`
	GraphsFile string   `yaml:"graphs_file"` // one graph expression per line, appended after Graphs
	EchoGraphs bool     `yaml:"echo_graphs"` // print graphs_file entries to stderr as they are read

	dir string
}

func (kf *KernelFile) KernelOpts() go3wl.KernelOpts {
	return go3wl.KernelOpts{
		NumIterations: kf.Iterations,
		UseLabels:     kf.UseLabels,
		UseIsoType:    kf.UseIsoType,
		Cumulative:    kf.Cumulative,
		Normalize:     kf.Normalize,
		Workers:       kf.Workers,
	}
}

func readKernelFile(pathname string) (*KernelFile, error) {
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}
	kf := &KernelFile{
		Precision: -1,
		dir:       filepath.Dir(pathname),
	}
	if err = yaml.Unmarshal(buf, kf); err != nil {
		return nil, errors.Wrap(err, "bad kernel file")
	}
	return kf, nil
}

func runKernelFile(pathname string, out io.Writer) error {
	kf, err := readKernelFile(pathname)
	if err != nil {
		return err
	}
	return kf.Run(out)
}

// Run computes the Gram matrix of the file's graphs and prints it to out.
func (kf *KernelFile) Run(out io.Writer) error {
	db := make([]go3wl.Graph, len(kf.Graphs))
	for i, expr := range kf.Graphs {
		X, err := lib3wl.NewGraphFromString(expr)
		if err != nil {
			return errors.Wrapf(err, "graph %d", i)
		}
		db[i] = X
	}
	if kf.GraphsFile != "" {
		more, err := kf.readGraphsFile()
		if err != nil {
			return err
		}
		db = append(db, more...)
	}

	dict, err := catalog.OpenDictionary(catalog.DictionaryOpts{
		DbPathName: kf.Catalog,
	})
	if err != nil {
		return err
	}
	defer dict.Close()

	k, err := lib3wl.NewKernel(dict, kf.KernelOpts())
	if err != nil {
		return err
	}

	klog.Infof("computing kernel of %d graphs, %d rounds", len(db), kf.Iterations)
	K, err := k.ComputeGramMatrix(db)
	if err != nil {
		return err
	}
	klog.Infof("catalog holds %d colors", dict.Size())

	lib3wl.WriteGram(out, K, go3wl.PrintOpts{
		Precision: kf.Precision,
	})
	return nil
}

func (kf *KernelFile) readGraphsFile() ([]go3wl.Graph, error) {
	pathname := kf.GraphsFile
	if !filepath.IsAbs(pathname) {
		pathname = filepath.Join(kf.dir, pathname)
	}
	file, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stream := lib3wl.ReadGraphs(file)
	if kf.EchoGraphs {
		stream = stream.Print(os.Stderr, go3wl.PrintOpts{Label: filepath.Base(pathname)})
	}
	db, err := stream.PullAll()
	if err != nil {
		return nil, errors.Wrap(err, pathname)
	}
	return db, nil
}
