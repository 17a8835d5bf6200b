package py3wl

import (
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"
)

func TestGram(t *testing.T) {
	graphs := py.Tuple{py.String("0-1-2"), py.String("2-0-1"), py.String("0,1,2")}
	obj, err := py_Gram(nil, py.Tuple{graphs, py.Int(1)})
	require.NoError(t, err)

	rows := obj.(py.Tuple)
	require.Len(t, rows, 3)
	row0, row1 := rows[0].(py.Tuple), rows[1].(py.Tuple)
	require.Equal(t, row0[0], row1[1])
	require.Equal(t, row0[1], row1[0])
	require.Equal(t, row0[0], row0[1])

	obj, err = py_Gram(nil, py.Tuple{&py.List{Items: graphs}, py.Int(1), py.False, py.False, py.True})
	require.NoError(t, err)
	require.Equal(t, py.Float(1), obj.(py.Tuple)[2].(py.Tuple)[2])
}

func TestGramErrors(t *testing.T) {
	_, err := py_Gram(nil, py.Tuple{py.Tuple{py.String("0-1")}})
	require.Error(t, err)

	_, err = py_Gram(nil, py.Tuple{py.Tuple{py.String("0-0")}, py.Int(1)})
	require.Error(t, err)

	_, err = py_Gram(nil, py.Tuple{py.Tuple{py.String("0-1")}, py.Int(-1)})
	require.Error(t, err)

	_, err = py_Gram(nil, py.Tuple{py.Tuple{py.Int(3)}, py.Int(1)})
	require.Error(t, err)
}

func TestColors(t *testing.T) {
	obj, err := py_Colors(nil, py.Tuple{py.String("0-1-2-0"), py.Int(0)})
	require.NoError(t, err)
	require.Equal(t, py.Tuple{
		py.Tuple{py.Int(0), py.Int(3)},
		py.Tuple{py.Int(2), py.Int(18)},
		py.Tuple{py.Int(3), py.Int(6)},
	}, obj)
}
