package go3wl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	for _, opts := range []KernelOpts{
		DefaultKernelOpts,
		{NumIterations: 0},
		{NumIterations: 4, UseLabels: true, UseIsoType: true, Workers: 8},
	} {
		require.NoError(t, opts.Validate())
	}

	for _, opts := range []KernelOpts{
		{NumIterations: -1},
		{Workers: -2},
		{UseIsoType: true},
	} {
		require.ErrorIs(t, opts.Validate(), ErrBadKernelOpts)
	}
}

func TestColorCounter(t *testing.T) {
	A := ColorCounter{}
	A.Add(1, 2)
	A.Add(5, 3)
	A.Add(1, 1)
	require.Equal(t, ColorCounter{1: 3, 5: 3}, A)
	require.Equal(t, uint64(6), A.Total())
	require.Equal(t, uint64(18), A.SelfKernel())

	B := ColorCounter{5: 2, 7: 10}
	require.Equal(t, uint64(6), A.Dot(B))
	require.Equal(t, A.Dot(B), B.Dot(A))
	require.Equal(t, uint64(0), A.Dot(ColorCounter{}))

	A.Merge(B)
	require.True(t, A.IsEqual(ColorCounter{1: 3, 5: 5, 7: 10}))
	require.False(t, A.IsEqual(B))
	require.False(t, A.IsEqual(ColorCounter{1: 3, 5: 5, 8: 10}))
}
