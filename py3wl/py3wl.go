package py3wl

import (
	"sort"

	"github.com/2x3systems/go3wl/go3wl"
	"github.com/2x3systems/go3wl/lib3wl"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

func pyBool(obj py.Object) (bool, error) {
	switch v := obj.(type) {
	case py.Bool:
		return bool(v), nil
	case py.Int:
		return v != 0, nil
	}
	return false, py.ExceptionNewf(py.TypeError, "expected bool (got %v)", obj.Type().Name)
}

func pyItems(obj py.Object) ([]py.Object, error) {
	switch v := obj.(type) {
	case py.Tuple:
		return v, nil
	case *py.List:
		return v.Items, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected tuple or list (got %v)", obj.Type().Name)
}

func graphFromObj(obj py.Object) (*lib3wl.Graph, error) {
	expr, isStr := obj.(py.String)
	if !isStr {
		return nil, py.ExceptionNewf(py.TypeError, "expected graph expression string (got %v)", obj.Type().Name)
	}
	X, err := lib3wl.NewGraphFromString(string(expr))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return X, nil
}

// exportKernelOpts reads (iterations[, use_labels[, use_iso[, normalize]]]) starting at args[0].
func exportKernelOpts(args py.Tuple) (opts go3wl.KernelOpts, err error) {
	if len(args) < 1 {
		err = py.ExceptionNewf(py.TypeError, "iterations expected")
		return
	}
	iters, err := py.GetInt(args[0])
	if err != nil {
		return
	}
	opts.NumIterations = int(iters)

	flags := []*bool{&opts.UseLabels, &opts.UseIsoType, &opts.Normalize}
	for i, arg := range args[1:] {
		if i >= len(flags) {
			err = py.ExceptionNewf(py.TypeError, "too many arguments")
			return
		}
		if *flags[i], err = pyBool(arg); err != nil {
			return
		}
	}

	if verr := opts.Validate(); verr != nil {
		err = py.ExceptionNewf(py.ValueError, "%v", verr)
	}
	return
}

// Arg 1 (tuple|list of str): graph expressions
// Arg 2 (int): number of refinement rounds
// Arg 3.. (bool, optional): use_labels, use_iso, normalize
func py_Gram(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 2 {
		return nil, py.ExceptionNewf(py.TypeError, "Gram(graphs, iterations[, use_labels[, use_iso[, normalize]]])")
	}
	items, err := pyItems(args[0])
	if err != nil {
		return nil, err
	}
	opts, err := exportKernelOpts(args[1:])
	if err != nil {
		return nil, err
	}

	db := make([]go3wl.Graph, len(items))
	for i, item := range items {
		if db[i], err = graphFromObj(item); err != nil {
			return nil, err
		}
	}

	K, err := lib3wl.ComputeGramMatrix(db, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	N := len(db)
	rows := make(py.Tuple, N)
	for i := 0; i < N; i++ {
		row := make(py.Tuple, N)
		for j := 0; j < N; j++ {
			row[j] = py.Float(K.At(i, j))
		}
		rows[i] = row
	}
	return rows, nil
}

// Arg 1 (str): graph expression
// Arg 2 (int): number of refinement rounds
// Arg 3.. (bool, optional): use_labels, use_iso
func py_Colors(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 2 || len(args) > 4 {
		return nil, py.ExceptionNewf(py.TypeError, "Colors(graph, iterations[, use_labels[, use_iso]])")
	}
	X, err := graphFromObj(args[0])
	if err != nil {
		return nil, err
	}
	opts, err := exportKernelOpts(args[1:])
	if err != nil {
		return nil, err
	}

	counter, err := lib3wl.NewRefiner(lib3wl.NewDictionary(), opts).ComputeColors(X)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	colors := make([]go3wl.Color, 0, len(counter))
	for c := range counter {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

	out := make(py.Tuple, len(colors))
	for i, c := range colors {
		out[i] = py.Tuple{py.Int(c), py.Int(counter[c])}
	}
	return out, nil
}

func init() {
	methods := []*py.Method{
		py.MustNewMethod("Gram", py_Gram, 0, "returns the global 3-WL Gram matrix of the given graph expressions"),
		py.MustNewMethod("Colors", py_Colors, 0, "returns the (color, count) distribution of a graph expression"),
	}

	globals := py.StringDict{
		"LIB_VERSION": py.String(LIB_VERSION),
	}

	py.RegisterModule(&py.ModuleImpl{
		Info: py.ModuleInfo{
			Name: "_py3wl",
			Doc:  "global 3-WL graph kernel gpython module",
		},
		Methods: methods,
		Globals: globals,
	})
}
