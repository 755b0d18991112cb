package svm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/born-ml/dal/internal/table"
)

// TrainResult is the outcome of Train.
type TrainResult struct {
	Model              *Model
	SupportVectorCount int
	SupportIndices     []int          // Training-row index of each support vector, ascending
	Coeffs             []float64      // alpha_i * y_i per support vector
	SupportVectors     *table.Homogen // Support vector rows
	Bias               float64
	Iterations         int
	Converged          bool
	Warning            error // Wraps ErrDidNotConverge when Converged is false
}

// Train fits a binary C-SVM classifier on data with one label per row.
//
// labels is an n×1 table holding exactly two distinct values; the smaller one
// becomes the first class. weights is an optional n×1 table of positive row
// weights scaling C per row; pass nil for uniform weights.
//
// Parameter and shape errors are reported before optimization starts.
// Running out of iterations is not an error: the result carries the best
// model found, Converged is false and Warning wraps ErrDidNotConverge.
//
// Example:
//
//	x, _ := table.FromRows([][]float64{{-2, -1}, {-1, -1}, {1, 1}, {2, 1}})
//	y := table.NewColumn([]float64{-1, -1, 1, 1})
//	result, err := svm.Train(svm.NewDescriptor(kernel.NewLinear(1)), x, y, nil)
func Train(desc Descriptor, data, labels, weights table.Table) (*TrainResult, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	p, err := newProblem(desc.C, data, labels, weights)
	if err != nil {
		return nil, err
	}

	log := desc.logger()
	par := desc.parallelConfig()
	started := time.Now()

	cache, err := newRowCache(desc.Kernel, p.x, desc.CacheSize, par)
	if err != nil {
		return nil, err
	}
	defer cache.close()

	log.Debug("svm: training started",
		slog.String("method", desc.Method.String()),
		slog.String("kernel", desc.Kernel.Kind().String()),
		slog.Int("rows", p.n),
		slog.Int("columns", p.x.ColumnCount()),
		slog.Float64("c", desc.C),
		slog.Float64("eps", desc.AccuracyThreshold))

	s := newSolver(desc, p, cache, par)
	var method strategy
	switch desc.Method {
	case MethodSMO:
		method = smo{shrinking: desc.Shrinking}
	default:
		method = thunder{size: desc.WorkingSetSize}
	}

	converged, err := method.optimize(s)
	if err != nil {
		return nil, err
	}
	if err := s.checkFinite(); err != nil {
		return nil, err
	}

	model := buildModel(desc.Kernel.Kind(), p, s.alpha, s.bias())
	result := &TrainResult{
		Model:              model,
		SupportVectorCount: model.SupportVectorCount(),
		SupportIndices:     model.SupportIndices(),
		Coeffs:             model.Coeffs(),
		SupportVectors:     model.SupportVectors(),
		Bias:               model.Bias(),
		Iterations:         s.iter,
		Converged:          converged,
	}

	elapsed := time.Since(started)
	if !converged {
		gmax, gmax2 := s.violation(nil)
		result.Warning = fmt.Errorf("%w: gap %g after %d iterations (threshold %g)",
			ErrDidNotConverge, gmax+gmax2, s.iter, desc.AccuracyThreshold)
		log.Warn("svm: solver did not converge",
			slog.String("method", desc.Method.String()),
			slog.Int("iterations", s.iter),
			slog.Float64("gap", gmax+gmax2))
	}
	log.Debug("svm: training finished",
		slog.Int("iterations", s.iter),
		slog.Int("support_vectors", result.SupportVectorCount),
		slog.Float64("bias", result.Bias),
		slog.Bool("converged", converged),
		slog.Duration("elapsed", elapsed))

	if desc.Observer != nil {
		desc.Observer.ObserveTrain(TrainStats{
			Method:         desc.Method,
			Kernel:         desc.Kernel.Kind(),
			Rows:           p.n,
			Iterations:     s.iter,
			SupportVectors: result.SupportVectorCount,
			Converged:      converged,
			Duration:       elapsed,
			CacheHits:      cache.hits,
			CacheMisses:    cache.misses,
		})
	}
	return result, nil
}
