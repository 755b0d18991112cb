package svm

import (
	"testing"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptor(t *testing.T) {
	desc := NewDescriptor(kernel.NewRBF(2))

	assert.Equal(t, MethodThunder, desc.Method)
	assert.Equal(t, 1.0, desc.C)
	assert.Equal(t, 1e-3, desc.AccuracyThreshold)
	assert.Equal(t, 100000, desc.MaxIterationCount)
	assert.Equal(t, 200, desc.CacheSize)
	assert.Equal(t, 1e-6, desc.Tau)
	assert.True(t, desc.Shrinking)
	assert.Zero(t, desc.WorkingSetSize)
	assert.Zero(t, desc.NumWorkers)
	assert.NoError(t, desc.Validate())

	assert.NotNil(t, desc.logger())
}

func TestDescriptor_ZeroValueInvalid(t *testing.T) {
	assert.ErrorIs(t, Descriptor{}.Validate(), ErrInvalidParameter)
	assert.ErrorIs(t, Descriptor{Kernel: kernel.NewLinear(1)}.Validate(), ErrInvalidParameter)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("smo")
	require.NoError(t, err)
	assert.Equal(t, MethodSMO, m)
	assert.Equal(t, "smo", m.String())

	m, err = ParseMethod("thunder")
	require.NoError(t, err)
	assert.Equal(t, MethodThunder, m)

	_, err = ParseMethod("newton")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, "Method(5)", Method(5).String())
}

func TestErrorsShared(t *testing.T) {
	assert.Same(t, kernel.ErrInvalidParameter, ErrInvalidParameter)
}
