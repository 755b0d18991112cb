package kernel

import (
	"math"
	"testing"

	"github.com/born-ml/dal/internal/parallel"
	"github.com/born-ml/dal/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear_Compute(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, 0, 2}

	assert.InDelta(t, 5.0, NewLinear(1).Compute(a, b), 1e-12)
	assert.InDelta(t, 0.5, NewLinear(0.1).Compute(a, b), 1e-12)
	assert.InDelta(t, 7.0, Linear{Scale: 1, Shift: 2}.Compute(a, b), 1e-12)

	// Symmetric.
	k := Linear{Scale: 0.3, Shift: 1}
	assert.Equal(t, k.Compute(a, b), k.Compute(b, a))
}

func TestRBF_Compute(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{1, 1}

	k := NewRBF(1)
	// ||a-b||^2 = 2, sigma = 1 -> exp(-1)
	assert.InDelta(t, math.Exp(-1), k.Compute(a, b), 1e-12)
	assert.Equal(t, 1.0, k.Compute(a, a))
	assert.Equal(t, k.Compute(a, b), k.Compute(b, a))

	// Bounded in (0, 1].
	far := []float64{3, -4}
	v := NewRBF(2).Compute(a, far)
	assert.Greater(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestRBF_Gamma(t *testing.T) {
	k := NewRBF(2)
	assert.InDelta(t, 0.125, k.Gamma(), 1e-12)

	g, err := NewRBFGamma(0.125)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, g.Sigma, 1e-12)

	a, b := []float64{1, 2}, []float64{-1, 0.5}
	assert.InDelta(t, k.Compute(a, b), g.Compute(a, b), 1e-12)

	_, err = NewRBFGamma(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kernel  Kernel
		wantErr bool
	}{
		{"linear default", NewLinear(1), false},
		{"linear shifted", Linear{Scale: 0.5, Shift: 1}, false},
		{"linear zero scale", NewLinear(0), true},
		{"linear negative scale", NewLinear(-1), true},
		{"linear negative shift", Linear{Scale: 1, Shift: -1}, true},
		{"linear nan scale", NewLinear(math.NaN()), true},
		{"rbf", NewRBF(1), false},
		{"rbf zero sigma", NewRBF(0), true},
		{"rbf negative sigma", NewRBF(-2), true},
		{"rbf inf sigma", NewRBF(math.Inf(1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kernel.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("rbf")
	require.NoError(t, err)
	assert.Equal(t, KindRBF, k)
	assert.Equal(t, "rbf", k.String())

	k, err = ParseKind("linear")
	require.NoError(t, err)
	assert.Equal(t, KindLinear, k)

	_, err = ParseKind("poly")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestRow(t *testing.T) {
	x, err := table.Wrap([]float64{-2, -1, -1, -1, 1, 1, 2, 1}, 4, 2)
	require.NoError(t, err)

	cfg := parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1}
	dst := make([]float64, 4)
	Row(NewLinear(1), x, 1, dst, cfg)

	assert.Equal(t, []float64{3, 2, -2, -3}, dst)
}

func TestCompute(t *testing.T) {
	x, err := table.Wrap([]float64{0, 0, 1, 0, 0, 1}, 3, 2)
	require.NoError(t, err)
	y, err := table.Wrap([]float64{1, 1}, 1, 2)
	require.NoError(t, err)

	gram, err := Compute(NewRBF(1), x, x, parallel.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 3, gram.RowCount())
	require.Equal(t, 3, gram.ColumnCount())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, gram.Row(i)[i])
		for j := 0; j < 3; j++ {
			assert.Equal(t, gram.Row(i)[j], gram.Row(j)[i])
		}
	}
	assert.InDelta(t, math.Exp(-1), gram.Row(1)[2], 1e-12)

	cross, err := Compute(NewLinear(2), x, y, parallel.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 2}, cross.Column(0))
}

func TestCompute_Errors(t *testing.T) {
	x, _ := table.Wrap([]float64{1, 2}, 1, 2)
	z, _ := table.Wrap([]float64{1, 2, 3}, 1, 3)

	_, err := Compute(NewLinear(1), x, z, parallel.DefaultConfig())
	assert.ErrorIs(t, err, table.ErrDimensionMismatch)

	_, err = Compute(NewRBF(-1), x, x, parallel.DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Compute(nil, x, x, parallel.DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func BenchmarkCompute(b *testing.B) {
	data := make([]float64, 512*16)
	for i := range data {
		data[i] = math.Sin(float64(i))
	}
	x, _ := table.Wrap(data, 512, 16)

	for _, k := range []Kernel{NewLinear(1), NewRBF(1)} {
		b.Run(k.Kind().String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Compute(k, x, x, parallel.DefaultConfig()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
