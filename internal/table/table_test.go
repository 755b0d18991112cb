package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWrap(t *testing.T) {
	data := []float64{
		-2, -1,
		-1, -1,
		1, 2,
	}
	x, err := Wrap(data, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, x.RowCount())
	assert.Equal(t, 2, x.ColumnCount())
	assert.Equal(t, []float64{-1, -1}, x.Row(1))
	assert.Equal(t, []float64{-2, -1, 1}, x.Column(0))
	assert.Equal(t, []float64{-1, -1, 2}, x.Column(1))

	// Rows are views: wrapping does not copy.
	data[5] = 7
	assert.Equal(t, 7.0, x.Row(2)[1])

	// Columns are copies.
	col := x.Column(0)
	col[0] = 100
	assert.Equal(t, -2.0, x.Row(0)[0])
}

func TestWrap_ShapeErrors(t *testing.T) {
	tests := []struct {
		name       string
		data       []float64
		rows, cols int
	}{
		{"too few values", []float64{1, 2, 3}, 2, 2},
		{"too many values", []float64{1, 2, 3, 4, 5}, 2, 2},
		{"negative rows", nil, -1, 2},
		{"negative cols", nil, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Wrap(tt.data, tt.rows, tt.cols)
			assert.ErrorIs(t, err, ErrDimensionMismatch)
		})
	}
}

func TestFromRows(t *testing.T) {
	x, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, x.RowCount())
	assert.Equal(t, 3, x.ColumnCount())
	assert.Equal(t, []float64{4, 5, 6}, x.Row(1))

	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	empty, err := FromRows(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.RowCount())
}

func TestNewColumn(t *testing.T) {
	y := NewColumn([]float64{-1, -1, 1})
	assert.Equal(t, 3, y.RowCount())
	assert.Equal(t, 1, y.ColumnCount())
	assert.Equal(t, []float64{-1, -1, 1}, y.Column(0))
}

func TestEmpty(t *testing.T) {
	e := Empty(4)
	assert.Equal(t, 0, e.RowCount())
	assert.Equal(t, 4, e.ColumnCount())
	assert.Nil(t, e.Dense())
	assert.Empty(t, e.Column(2))
	assert.Panics(t, func() { e.Row(0) })
}

func TestFromDense(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	x := FromDense(m)
	assert.Equal(t, 2, x.RowCount())
	assert.Equal(t, []float64{3, 4}, x.Row(1))
	assert.Same(t, m, x.Dense())

	assert.Equal(t, 0, FromDense(nil).RowCount())
}

func TestGather(t *testing.T) {
	x, err := Wrap([]float64{0, 0, 1, 1, 2, 2, 3, 3}, 4, 2)
	require.NoError(t, err)

	g := Gather(x, []int{3, 1})
	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, []float64{3, 3}, g.Row(0))
	assert.Equal(t, []float64{1, 1}, g.Row(1))

	// Gathered tables own their storage.
	g.Row(0)[0] = -5
	assert.Equal(t, 3.0, x.Row(3)[0])

	none := Gather(x, nil)
	assert.Equal(t, 0, none.RowCount())
	assert.Equal(t, 2, none.ColumnCount())
}
