package svm

import (
	"math"
	"testing"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModel(t *testing.T) {
	p := &problem{
		x:      mustRows(t, [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}),
		n:      4,
		y:      []float64{-1, -1, 1, 1},
		c:      []float64{1, 1, 1, 10},
		first:  3,
		second: 7,
	}
	// Row 3 is below 1e-10 * C_3.
	alpha := []float64{0.5, 0, 0.5, 5e-10}

	m := buildModel(kernel.KindRBF, p, alpha, 0.25)
	assert.Equal(t, 2, m.SupportVectorCount())
	assert.Equal(t, []int{0, 2}, m.SupportIndices())
	assert.Equal(t, []float64{-0.5, 0.5}, m.Coeffs())
	assert.Equal(t, 0.25, m.Bias())
	assert.Equal(t, 3.0, m.FirstClassLabel())
	assert.Equal(t, 7.0, m.SecondClassLabel())
	assert.Equal(t, 2, m.ColumnCount())
	assert.Equal(t, kernel.KindRBF, m.KernelKind())

	sv := m.SupportVectors()
	assert.Equal(t, 2, sv.RowCount())
	assert.Equal(t, []float64{2, 2}, sv.Row(1))
}

func TestModel_AccessorsCopy(t *testing.T) {
	m := handModel(t)

	idx := m.SupportIndices()
	idx[0] = 99
	coeffs := m.Coeffs()
	coeffs[0] = 99
	sv := m.SupportVectors()
	sv.Row(0)[0] = 99

	assert.Equal(t, []int{4}, m.SupportIndices())
	assert.Equal(t, []float64{1}, m.Coeffs())
	assert.Equal(t, []float64{1, 1}, m.SupportVectors().Row(0))
}

func TestNewModel_CopiesInputs(t *testing.T) {
	data := []float64{1, 2}
	sv, err := table.Wrap(data, 1, 2)
	require.NoError(t, err)
	idx := []int{0}
	coeffs := []float64{0.5}

	m, err := NewModel(kernel.KindLinear, sv, idx, coeffs, 0, -1, 1)
	require.NoError(t, err)

	data[0] = 9
	idx[0] = 9
	coeffs[0] = 9
	assert.Equal(t, []float64{1, 2}, m.SupportVectors().Row(0))
	assert.Equal(t, []int{0}, m.SupportIndices())
	assert.Equal(t, []float64{0.5}, m.Coeffs())
}

func TestNewModel_Errors(t *testing.T) {
	sv, err := table.FromRows([][]float64{{1, 1}, {2, 2}})
	require.NoError(t, err)

	tests := []struct {
		name          string
		kind          kernel.Kind
		sv            table.Table
		idx           []int
		coeffs        []float64
		bias          float64
		first, second float64
		want          error
	}{
		{"nil table", kernel.KindLinear, nil, nil, nil, 0, 0, 1, ErrInvalidParameter},
		{"short indices", kernel.KindLinear, sv, []int{0}, []float64{1, 1}, 0, 0, 1, ErrDimensionMismatch},
		{"short coeffs", kernel.KindLinear, sv, []int{0, 1}, []float64{1}, 0, 0, 1, ErrDimensionMismatch},
		{"empty", kernel.KindLinear, table.Empty(2), nil, nil, 0, 0, 1, ErrInvalidParameter},
		{"nan coeff", kernel.KindLinear, sv, []int{0, 1}, []float64{1, math.NaN()}, 0, 0, 1, ErrNumericalFailure},
		{"inf bias", kernel.KindLinear, sv, []int{0, 1}, []float64{1, -1}, math.Inf(1), 0, 1, ErrNumericalFailure},
		{"unordered labels", kernel.KindLinear, sv, []int{0, 1}, []float64{1, -1}, 0, 1, 1, ErrInvalidParameter},
		{"unknown kernel", kernel.Kind(7), sv, []int{0, 1}, []float64{1, -1}, 0, 0, 1, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.kind, tt.sv, tt.idx, tt.coeffs, tt.bias, tt.first, tt.second)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
