package svm

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/parallel"
	"github.com/born-ml/dal/internal/table"
)

// rowCache serves kernel rows K(x_i, ·) of the training table.
//
// Rows are memoized in a bigcache instance bounded by the descriptor's
// CacheSize. Entries store the exact float64 bits, so a cached row is
// identical to a recomputed one. A rowCache belongs to one Train call and
// must be closed when the call returns.
type rowCache struct {
	k    kernel.Kernel
	x    table.Table
	n    int
	par  parallel.Config
	diag []float64 // K(x_i, x_i)

	store *bigcache.BigCache // nil when caching is disabled
	buf   []byte

	hits   int64
	misses int64
}

func newRowCache(k kernel.Kernel, x table.Table, sizeMB int, par parallel.Config) (*rowCache, error) {
	n := x.RowCount()
	c := &rowCache{
		k:    k,
		x:    x,
		n:    n,
		par:  par,
		diag: make([]float64, n),
	}
	parallel.For(n, func(i int) {
		xi := x.Row(i)
		c.diag[i] = k.Compute(xi, xi)
	}, par)

	if sizeMB == 0 {
		return c, nil
	}

	rowBytes := 8 * n
	shards := 16
	for shards > 1 && sizeMB<<20/shards < rowBytes+64 {
		shards /= 2
	}

	config := bigcache.DefaultConfig(24 * time.Hour)
	config.Shards = shards
	config.HardMaxCacheSize = sizeMB
	config.MaxEntrySize = rowBytes
	config.MaxEntriesInWindow = shards * 10
	config.CleanWindow = 0
	config.Verbose = false

	store, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("kernel cache: %w", err)
	}
	c.store = store
	c.buf = make([]byte, 0, rowBytes)
	return c, nil
}

// row writes K(x_i, x_j) for every j into dst, which must have length n.
func (c *rowCache) row(i int, dst []float64) {
	if c.store == nil {
		c.misses++
		kernel.Row(c.k, c.x, i, dst, c.par)
		return
	}

	key := strconv.Itoa(i)
	if b, err := c.store.Get(key); err == nil && len(b) == 8*c.n {
		c.hits++
		for j := range dst {
			dst[j] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*j:]))
		}
		return
	}

	c.misses++
	kernel.Row(c.k, c.x, i, dst, c.par)

	c.buf = c.buf[:0]
	for _, v := range dst {
		c.buf = binary.LittleEndian.AppendUint64(c.buf, math.Float64bits(v))
	}
	// A row that does not fit is simply recomputed next time.
	_ = c.store.Set(key, c.buf)
}

func (c *rowCache) close() {
	if c.store != nil {
		_ = c.store.Close()
	}
}
