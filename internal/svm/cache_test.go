package svm

import (
	"testing"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowCache(t *testing.T) {
	x := mustRows(t, rbfX)
	k := kernel.NewRBF(0.7)

	tests := []struct {
		name   string
		sizeMB int
	}{
		{"disabled", 0},
		{"tiny", 1},
		{"default", DefaultCacheSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newRowCache(k, x, tt.sizeMB, parallel.DefaultConfig())
			require.NoError(t, err)
			defer c.close()

			want := make([]float64, x.RowCount())
			got := make([]float64, x.RowCount())
			for i := 0; i < x.RowCount(); i++ {
				kernel.Row(k, x, i, want, parallel.DefaultConfig())

				c.row(i, got)
				assert.Equal(t, want, got)
				c.row(i, got)
				assert.Equal(t, want, got)

				assert.Equal(t, want[i], c.diag[i])
			}

			n := int64(x.RowCount())
			if tt.sizeMB == 0 {
				assert.Equal(t, int64(0), c.hits)
				assert.Equal(t, 2*n, c.misses)
			} else {
				assert.Equal(t, n, c.hits)
				assert.Equal(t, n, c.misses)
			}
		})
	}
}
