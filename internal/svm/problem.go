package svm

import (
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/dal/internal/table"
)

// problem is a validated training set with labels remapped to {-1, +1} and
// per-row box bounds.
type problem struct {
	x      table.Table
	n      int
	y      []float64 // -1 for first, +1 for second
	c      []float64 // C_i = C * weight_i
	first  float64   // smaller original label
	second float64   // larger original label
}

// newProblem checks shapes and values of the training inputs. weights may be
// nil, in which case every row has weight 1.
func newProblem(c float64, data, labels, weights table.Table) (*problem, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: training table is nil", ErrInvalidParameter)
	}
	n, cols := data.RowCount(), data.ColumnCount()
	if n == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: training table is empty (%dx%d)", ErrDimensionMismatch, n, cols)
	}
	for i := 0; i < n; i++ {
		if !allFinite(data.Row(i)) {
			return nil, fmt.Errorf("%w: training row %d has a non-finite value", ErrNumericalFailure, i)
		}
	}

	raw, err := column("labels", labels, n)
	if err != nil {
		return nil, err
	}
	if !allFinite(raw) {
		return nil, fmt.Errorf("%w: labels contain a non-finite value", ErrNumericalFailure)
	}
	classes := slices.Clone(raw)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	switch {
	case len(classes) == 1:
		return nil, fmt.Errorf("%w: every label equals %g", ErrSingleClassLabel, classes[0])
	case len(classes) > 2:
		return nil, fmt.Errorf("%w: binary classification needs 2 distinct labels, got %d",
			ErrInvalidParameter, len(classes))
	}

	p := &problem{
		x:      data,
		n:      n,
		y:      make([]float64, n),
		c:      make([]float64, n),
		first:  classes[0],
		second: classes[1],
	}
	for i, l := range raw {
		if l == p.first {
			p.y[i] = -1
		} else {
			p.y[i] = 1
		}
	}

	if weights == nil {
		for i := range p.c {
			p.c[i] = c
		}
		return p, nil
	}
	w, err := column("weights", weights, n)
	if err != nil {
		return nil, err
	}
	for i, wi := range w {
		if !(wi > 0) || math.IsInf(wi, 1) {
			return nil, fmt.Errorf("%w: weight %d must be positive and finite, got %g", ErrInvalidParameter, i, wi)
		}
		p.c[i] = c * wi
	}
	return p, nil
}

// column extracts the single column of an n×1 table.
func column(name string, t table.Table, n int) ([]float64, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: %s table is nil", ErrDimensionMismatch, name)
	}
	if t.ColumnCount() != 1 {
		return nil, fmt.Errorf("%w: %s table must have 1 column, got %d", ErrDimensionMismatch, name, t.ColumnCount())
	}
	if t.RowCount() != n {
		return nil, fmt.Errorf("%w: %d %s for %d training rows", ErrDimensionMismatch, t.RowCount(), name, n)
	}
	return t.Column(0), nil
}

func allFinite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
