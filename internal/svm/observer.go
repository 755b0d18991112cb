package svm

import (
	"time"

	"github.com/born-ml/dal/internal/kernel"
)

// Observer receives statistics about finished training and inference calls.
// Implementations must be safe for concurrent use when one Descriptor is
// shared between goroutines.
type Observer interface {
	ObserveTrain(stats TrainStats)
	ObserveInfer(stats InferStats)
}

// TrainStats describes one Train call.
type TrainStats struct {
	Method         Method
	Kernel         kernel.Kind
	Rows           int
	Iterations     int
	SupportVectors int
	Converged      bool
	Duration       time.Duration
	CacheHits      int64 // Kernel rows served from the cache
	CacheMisses    int64 // Kernel rows computed
}

// InferStats describes one Infer call.
type InferStats struct {
	Kernel         kernel.Kind
	Rows           int
	SupportVectors int
	Duration       time.Duration
}
