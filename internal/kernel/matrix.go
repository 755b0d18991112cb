package kernel

import (
	"fmt"

	"github.com/born-ml/dal/internal/parallel"
	"github.com/born-ml/dal/internal/table"
)

// Row fills dst[j] = k(x_i, x_j) for every row j of x.
// dst must have length x.RowCount().
func Row(k Kernel, x table.Table, i int, dst []float64, cfg parallel.Config) {
	xi := x.Row(i)
	parallel.For(len(dst), func(j int) {
		dst[j] = k.Compute(xi, x.Row(j))
	}, cfg)
}

// Compute returns the kernel matrix K with K[i][j] = k(x_i, y_j).
//
// x and y must have the same column count, otherwise ErrDimensionMismatch
// (shared with the table package) is returned.
//
// Example:
//
//	x, _ := table.Wrap([]float64{0, 0, 1, 1}, 2, 2)
//	gram, err := kernel.Compute(kernel.NewRBF(1.0), x, x, parallel.DefaultConfig())
func Compute(k Kernel, x, y table.Table, cfg parallel.Config) (*table.Homogen, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: kernel is nil", ErrInvalidParameter)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	if x.ColumnCount() != y.ColumnCount() {
		return nil, fmt.Errorf("%w: x has %d columns, y has %d",
			table.ErrDimensionMismatch, x.ColumnCount(), y.ColumnCount())
	}

	rows, cols := x.RowCount(), y.RowCount()
	out := make([]float64, rows*cols)
	parallel.ForBatch(rows, cols, func(i, j int) {
		out[i*cols+j] = k.Compute(x.Row(i), y.Row(j))
	}, cfg)

	return table.Wrap(out, rows, cols)
}
