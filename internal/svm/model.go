package svm

import (
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/table"
)

// svThreshold is the fraction of C_i below which alpha_i counts as zero.
const svThreshold = 1e-10

// Model is a trained binary classifier. It is immutable; accessors return
// copies.
type Model struct {
	kind           kernel.Kind
	supportVectors *table.Homogen
	supportIndices []int
	coeffs         []float64
	bias           float64
	firstClass     float64
	secondClass    float64
	columns        int
}

// NewModel assembles a model from its parts, for example to restore one that
// was trained earlier. kind is the kernel the coefficients were fitted with.
// supportVectors, indices and coeffs must be co-indexed.
func NewModel(kind kernel.Kind, supportVectors table.Table, indices []int, coeffs []float64,
	bias, firstClass, secondClass float64) (*Model, error) {
	if kind != kernel.KindLinear && kind != kernel.KindRBF {
		return nil, fmt.Errorf("%w: unknown kernel %v", ErrInvalidParameter, kind)
	}
	if supportVectors == nil {
		return nil, fmt.Errorf("%w: support vector table is nil", ErrInvalidParameter)
	}
	count := supportVectors.RowCount()
	if len(indices) != count || len(coeffs) != count {
		return nil, fmt.Errorf("%w: %d support vectors, %d indices, %d coefficients",
			ErrDimensionMismatch, count, len(indices), len(coeffs))
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: model needs at least one support vector", ErrInvalidParameter)
	}
	if !allFinite(coeffs) || math.IsNaN(bias) || math.IsInf(bias, 0) {
		return nil, fmt.Errorf("%w: non-finite coefficient or bias", ErrNumericalFailure)
	}
	if !(firstClass < secondClass) {
		return nil, fmt.Errorf("%w: class labels must be ordered, got %g and %g",
			ErrInvalidParameter, firstClass, secondClass)
	}

	rows := make([]int, count)
	for i := range rows {
		rows[i] = i
	}
	return &Model{
		kind:           kind,
		supportVectors: table.Gather(supportVectors, rows),
		supportIndices: slices.Clone(indices),
		coeffs:         slices.Clone(coeffs),
		bias:           bias,
		firstClass:     firstClass,
		secondClass:    secondClass,
		columns:        supportVectors.ColumnCount(),
	}, nil
}

// buildModel keeps the rows whose alpha exceeds the noise threshold, in
// ascending row order, with signed coefficients alpha_i * y_i.
func buildModel(kind kernel.Kind, p *problem, alpha []float64, bias float64) *Model {
	var idx []int
	var coeffs []float64
	for i, a := range alpha {
		if a > svThreshold*p.c[i] {
			idx = append(idx, i)
			coeffs = append(coeffs, a*p.y[i])
		}
	}
	return &Model{
		kind:           kind,
		supportVectors: table.Gather(p.x, idx),
		supportIndices: idx,
		coeffs:         coeffs,
		bias:           bias,
		firstClass:     p.first,
		secondClass:    p.second,
		columns:        p.x.ColumnCount(),
	}
}

// KernelKind returns the kernel the model was trained with.
func (m *Model) KernelKind() kernel.Kind { return m.kind }

// SupportVectorCount returns the number of support vectors.
func (m *Model) SupportVectorCount() int { return len(m.supportIndices) }

// SupportVectors returns a copy of the support vector rows.
func (m *Model) SupportVectors() *table.Homogen {
	rows := make([]int, len(m.supportIndices))
	for i := range rows {
		rows[i] = i
	}
	return table.Gather(m.supportVectors, rows)
}

// SupportIndices returns the training-row index of each support vector.
func (m *Model) SupportIndices() []int { return slices.Clone(m.supportIndices) }

// Coeffs returns the signed coefficient alpha_i * y_i of each support vector.
func (m *Model) Coeffs() []float64 { return slices.Clone(m.coeffs) }

// Bias returns the intercept of the decision function.
func (m *Model) Bias() float64 { return m.bias }

// FirstClassLabel returns the label predicted for negative decision values.
func (m *Model) FirstClassLabel() float64 { return m.firstClass }

// SecondClassLabel returns the label predicted for non-negative decision values.
func (m *Model) SecondClassLabel() float64 { return m.secondClass }

// ColumnCount returns the feature count the model was trained on.
func (m *Model) ColumnCount() int { return m.columns }
