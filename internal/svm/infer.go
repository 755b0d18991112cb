package svm

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/born-ml/dal/internal/parallel"
	"github.com/born-ml/dal/internal/table"
)

// InferResult holds one decision value and one predicted label per query row.
type InferResult struct {
	Labels           []float64
	DecisionFunction []float64
}

// Infer evaluates model on every row of data:
//
//	decision(x) = Σ_j coeff_j · K(x, sv_j) + bias
//
// and predicts the model's second class label when decision(x) >= 0, the
// first one otherwise. desc supplies the kernel, which must be of the kind the
// model was trained with. Rows are evaluated in parallel; the output does not
// depend on the worker count.
func Infer(desc Descriptor, model *Model, data table.Table) (*InferResult, error) {
	if err := desc.validateKernel(); err != nil {
		return nil, err
	}
	if desc.NumWorkers < 0 {
		return nil, fmt.Errorf("%w: worker count must be non-negative, got %d", ErrInvalidParameter, desc.NumWorkers)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrInvalidParameter)
	}
	if desc.Kernel.Kind() != model.kind {
		return nil, fmt.Errorf("%w: model was trained with a %v kernel, descriptor has %v",
			ErrInvalidParameter, model.kind, desc.Kernel.Kind())
	}
	if data == nil {
		return nil, fmt.Errorf("%w: query table is nil", ErrInvalidParameter)
	}
	if data.ColumnCount() != model.columns {
		return nil, fmt.Errorf("%w: query has %d columns, model expects %d",
			ErrDimensionMismatch, data.ColumnCount(), model.columns)
	}

	started := time.Now()
	m := data.RowCount()
	result := &InferResult{
		Labels:           make([]float64, m),
		DecisionFunction: make([]float64, m),
	}

	k := desc.Kernel
	sv := model.supportVectors
	err := parallel.ForErr(m, func(i int) error {
		x := data.Row(i)
		v := model.bias
		for j, coeff := range model.coeffs {
			v += coeff * k.Compute(x, sv.Row(j))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: decision value of row %d is %g", ErrNumericalFailure, i, v)
		}
		result.DecisionFunction[i] = v
		if v >= 0 {
			result.Labels[i] = model.secondClass
		} else {
			result.Labels[i] = model.firstClass
		}
		return nil
	}, desc.parallelConfig())
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	desc.logger().Debug("svm: inference finished",
		slog.Int("rows", m),
		slog.Int("support_vectors", model.SupportVectorCount()),
		slog.Duration("elapsed", elapsed))

	if desc.Observer != nil {
		desc.Observer.ObserveInfer(InferStats{
			Kernel:         k.Kind(),
			Rows:           m,
			SupportVectors: model.SupportVectorCount(),
			Duration:       elapsed,
		})
	}
	return result, nil
}
