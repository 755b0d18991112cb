// Package table implements the in-memory tabular data source consumed by the
// kernel and SVM packages.
//
// A Table is a rows × columns block of float64 values. Homogen stores the
// values row-major in a gonum dense matrix, so rows can be handed to kernels
// without copying.
package table

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch reports incompatible shapes between inputs.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Table is a read-only rows × columns source of float64 values.
type Table interface {
	// RowCount returns the number of rows.
	RowCount() int

	// ColumnCount returns the number of columns.
	ColumnCount() int

	// Row returns row i. The returned slice may alias the table storage and
	// must not be modified.
	Row(i int) []float64

	// Column returns a copy of column j.
	Column(j int) []float64
}

// Homogen is a dense, row-major table where every column has type float64.
type Homogen struct {
	dense *mat.Dense // nil when the table has no rows or no columns
	rows  int
	cols  int
}

// Wrap creates a table over data without copying it.
//
// data is interpreted row-major and must hold exactly rows*cols values.
//
// Example:
//
//	x, err := table.Wrap([]float64{
//	    -2, -1,
//	     1,  1,
//	}, 2, 2)
func Wrap(data []float64, rows, cols int) (*Homogen, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape %dx%d", ErrDimensionMismatch, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values cannot fill a %dx%d table",
			ErrDimensionMismatch, len(data), rows, cols)
	}
	if rows == 0 || cols == 0 {
		return &Homogen{rows: rows, cols: cols}, nil
	}
	return &Homogen{dense: mat.NewDense(rows, cols, data), rows: rows, cols: cols}, nil
}

// FromRows copies a slice of equally sized rows into a new table.
func FromRows(rows [][]float64) (*Homogen, error) {
	if len(rows) == 0 {
		return &Homogen{}, nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrDimensionMismatch, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return Wrap(data, len(rows), cols)
}

// NewColumn creates an n×1 table over values, the shape used for label and
// weight columns.
func NewColumn(values []float64) *Homogen {
	t, _ := Wrap(values, len(values), 1)
	return t
}

// Empty creates a table with zero rows and the given column count.
func Empty(cols int) *Homogen {
	return &Homogen{cols: max(cols, 0)}
}

// FromDense wraps an existing gonum matrix. The matrix is not copied.
func FromDense(m *mat.Dense) *Homogen {
	if m == nil || m.IsEmpty() {
		return &Homogen{}
	}
	r, c := m.Dims()
	return &Homogen{dense: m, rows: r, cols: c}
}

// RowCount returns the number of rows.
func (t *Homogen) RowCount() int { return t.rows }

// ColumnCount returns the number of columns.
func (t *Homogen) ColumnCount() int { return t.cols }

// Row returns a view of row i backed by the table storage.
func (t *Homogen) Row(i int) []float64 {
	if t.dense == nil {
		panic(fmt.Sprintf("table: row %d out of range [0, %d)", i, t.rows))
	}
	return t.dense.RawRowView(i)
}

// Column returns a copy of column j.
func (t *Homogen) Column(j int) []float64 {
	if t.dense == nil {
		if j < 0 || j >= t.cols {
			panic(fmt.Sprintf("table: column %d out of range [0, %d)", j, t.cols))
		}
		return []float64{}
	}
	return mat.Col(nil, j, t.dense)
}

// Dense returns the backing matrix, or nil for an empty table.
func (t *Homogen) Dense() *mat.Dense { return t.dense }

// Gather copies the given rows of src into a new table, in the given order.
func Gather(src Table, rows []int) *Homogen {
	cols := src.ColumnCount()
	if len(rows) == 0 {
		return Empty(cols)
	}
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		data = append(data, src.Row(r)...)
	}
	t, _ := Wrap(data, len(rows), cols)
	return t
}
