package go3wl

import "errors"

// Errors
var (
	ErrBadKernelOpts      = errors.New("bad kernel opts")
	ErrNilGraph           = errors.New("nil graph")
	ErrBadNodeID          = errors.New("bad graph node ID")
	ErrNotDense           = errors.New("node IDs are not dense")
	ErrSelfLoop           = errors.New("self loops are not supported")
	ErrAsymmetricEdge     = errors.New("edge membership is not symmetric")
	ErrBadDegree          = errors.New("node degree is inconsistent with its edges")
	ErrMissingLabels      = errors.New("graph has missing or partial node labels")
	ErrLabelConflict      = errors.New("node assigned conflicting labels")
	ErrBadEncoding        = errors.New("bad graph encoding")
	ErrTripleLookup       = errors.New("triple lookup miss")
	ErrColorUnregistered  = errors.New("color missing from dictionary")
	ErrDictionaryCorrupt  = errors.New("dictionary is inconsistent")
	ErrDictionaryReadOnly = errors.New("dictionary was opened read-only")
	ErrBadDictionaryParam = errors.New("bad dictionary param")
)
