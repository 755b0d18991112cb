// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package table provides the dense float64 tables consumed by the kernel and
// svm packages.
//
// Example:
//
//	x, err := table.FromRows([][]float64{{-2, -1}, {1, 1}})
//	y := table.NewColumn([]float64{-1, 1})
package table

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dal/internal/table"
)

// ErrDimensionMismatch reports incompatible shapes between inputs.
var ErrDimensionMismatch = table.ErrDimensionMismatch

// Table is a read-only rows × columns source of float64 values.
type Table = table.Table

// Homogen is a dense, row-major table backed by a gonum matrix.
type Homogen = table.Homogen

// Wrap creates a rows × cols table over data (row-major) without copying.
func Wrap(data []float64, rows, cols int) (*Homogen, error) {
	return table.Wrap(data, rows, cols)
}

// FromRows copies equally sized rows into a new table.
func FromRows(rows [][]float64) (*Homogen, error) {
	return table.FromRows(rows)
}

// NewColumn creates an n×1 table, typically for labels or weights.
func NewColumn(values []float64) *Homogen {
	return table.NewColumn(values)
}

// Empty creates a table with no rows and cols columns.
func Empty(cols int) *Homogen {
	return table.Empty(cols)
}

// FromDense wraps a gonum matrix.
func FromDense(m *mat.Dense) *Homogen {
	return table.FromDense(m)
}
