package svm

import (
	"sync"
	"testing"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/table"
	"github.com/stretchr/testify/require"
)

// Two clusters separable by the sign of x1+x2.
var (
	sepX = [][]float64{
		{-2, -1}, {-1, -1}, {-1, -2},
		{1, 1}, {1, 2}, {2, 1},
	}
	sepY = []float64{-1, -1, -1, 1, 1, 1}

	// sepX plus one outlier on each side.
	overlapX = append(append([][]float64{}, sepX...), []float64{-3, -3}, []float64{3, 3})
	overlapY = []float64{-1, -1, -1, 1, 1, 1, 1, -1}

	rbfX = [][]float64{
		{-2, 0}, {-2, -1}, {-2, 1}, {2, 0}, {2, -1}, {2, 1},
		{-1, 0}, {-1, -0.5}, {-1, 0.5}, {1, 0.5}, {1, -0.5}, {1, 0.5},
	}
	rbfY = []float64{-1, -1, -1, -1, -1, -1, 1, 1, 1, 1, 1, 1}

	weightedX = [][]float64{
		{-2, 0}, {-1, -1}, {0, -2},
		{0, 2}, {1, 1}, {2, 0},
	}
)

var methods = []Method{MethodThunder, MethodSMO}

func mustRows(t *testing.T, rows [][]float64) *table.Homogen {
	t.Helper()
	x, err := table.FromRows(rows)
	require.NoError(t, err)
	return x
}

// descriptor returns a tight-tolerance descriptor for tests.
func descriptor(method Method, k kernel.Kernel, c float64) Descriptor {
	desc := NewDescriptor(k)
	desc.Method = method
	desc.C = c
	desc.AccuracyThreshold = 1e-6
	return desc
}

// trainInfer trains on (x, y) and evaluates the model on x.
func trainInfer(t *testing.T, desc Descriptor, x [][]float64, y, w []float64) (*TrainResult, *InferResult) {
	t.Helper()
	data := mustRows(t, x)
	var weights table.Table
	if w != nil {
		weights = table.NewColumn(w)
	}
	trained, err := Train(desc, data, table.NewColumn(y), weights)
	require.NoError(t, err)
	inferred, err := Infer(desc, trained.Model, data)
	require.NoError(t, err)
	return trained, inferred
}

type recordingObserver struct {
	mu    sync.Mutex
	train []TrainStats
	infer []InferStats
}

func (r *recordingObserver) ObserveTrain(s TrainStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.train = append(r.train, s)
}

func (r *recordingObserver) ObserveInfer(s InferStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infer = append(r.infer, s)
}
