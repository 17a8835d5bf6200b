package go3wl

import (
	"github.com/pkg/errors"
)

// Validate checks opts for values the kernel cannot honor.
func (opts *KernelOpts) Validate() error {
	if opts.NumIterations < 0 {
		return errors.Wrapf(ErrBadKernelOpts, "NumIterations must be >= 0 (got %d)", opts.NumIterations)
	}
	if opts.Workers < 0 {
		return errors.Wrapf(ErrBadKernelOpts, "Workers must be >= 0 (got %d)", opts.Workers)
	}
	if opts.UseIsoType && !opts.UseLabels {
		return errors.Wrap(ErrBadKernelOpts, "UseIsoType requires UseLabels")
	}
	return nil
}

// Add increments the count of c.
func (counter ColorCounter) Add(c Color, count uint64) {
	counter[c] += count
}

// Merge adds all counts of src into this counter.
func (counter ColorCounter) Merge(src ColorCounter) {
	for c, count := range src {
		counter[c] += count
	}
}

// Total returns the sum of all counts.
func (counter ColorCounter) Total() uint64 {
	total := uint64(0)
	for _, count := range counter {
		total += count
	}
	return total
}

// Dot returns the inner product of two counters viewed as sparse count vectors.
func (counter ColorCounter) Dot(other ColorCounter) uint64 {
	A, B := counter, other
	if len(B) < len(A) {
		A, B = B, A
	}
	dot := uint64(0)
	for c, count := range A {
		dot += count * B[c]
	}
	return dot
}

// SelfKernel returns the sum of squared counts.
func (counter ColorCounter) SelfKernel() uint64 {
	return counter.Dot(counter)
}

// IsEqual returns true if both counters hold the same colors with the same counts.
func (counter ColorCounter) IsEqual(other ColorCounter) bool {
	if len(counter) != len(other) {
		return false
	}
	for c, count := range counter {
		if otherCount, exists := other[c]; !exists || otherCount != count {
			return false
		}
	}
	return true
}
