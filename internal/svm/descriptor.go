package svm

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/parallel"
)

// Method selects the working-set strategy of the optimizer.
type Method int

// Solver methods.
const (
	// MethodThunder optimizes blocks of up to WorkingSetSize (default 64)
	// variables at a time.
	MethodThunder Method = iota

	// MethodSMO optimizes one maximal-violating pair at a time.
	MethodSMO
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodThunder:
		return "thunder"
	case MethodSMO:
		return "smo"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a method name ("thunder", "smo") to a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "thunder":
		return MethodThunder, nil
	case "smo":
		return MethodSMO, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidParameter, name)
	}
}

// Default hyperparameters.
const (
	DefaultC                 = 1.0
	DefaultAccuracyThreshold = 1e-3
	DefaultMaxIterationCount = 100000
	DefaultCacheSize         = 200 // megabytes
	DefaultTau               = 1e-6
)

// Descriptor holds the hyperparameters shared by Train and Infer.
//
// Use NewDescriptor to get a descriptor with every default filled in; the
// zero value is not valid.
type Descriptor struct {
	Method            Method        // Working-set strategy (default: MethodThunder)
	Kernel            kernel.Kernel // Kernel function (required)
	C                 float64       // Box constraint upper bound (default: 1.0, must be > 0)
	AccuracyThreshold float64       // Stopping tolerance on the KKT violation (default: 1e-3)
	MaxIterationCount int           // Iteration budget (default: 100000, must be >= 1)
	CacheSize         int           // Kernel row cache in megabytes (default: 200, 0 disables)
	Tau               float64       // Replacement for non-positive curvature (default: 1e-6)
	Shrinking         bool          // Shrink the SMO active set (default: true)
	WorkingSetSize    int           // Thunder block size (default: 0 = 64 rows)
	NumWorkers        int           // Goroutines for data-parallel loops (default: 0 = NumCPU)

	Logger   *slog.Logger // Logger for solver events (nil: slog.Default())
	Observer Observer     // Receives run statistics (nil: none)
}

// NewDescriptor creates a descriptor for k with default hyperparameters.
//
// Example:
//
//	desc := svm.NewDescriptor(kernel.NewLinear(1.0))
//	desc.C = 10
//	result, err := svm.Train(desc, x, y, nil)
func NewDescriptor(k kernel.Kernel) Descriptor {
	return Descriptor{
		Method:            MethodThunder,
		Kernel:            k,
		C:                 DefaultC,
		AccuracyThreshold: DefaultAccuracyThreshold,
		MaxIterationCount: DefaultMaxIterationCount,
		CacheSize:         DefaultCacheSize,
		Tau:               DefaultTau,
		Shrinking:         true,
	}
}

// Validate reports the first malformed hyperparameter as ErrInvalidParameter.
func (d Descriptor) Validate() error {
	if err := d.validateKernel(); err != nil {
		return err
	}
	switch d.Method {
	case MethodThunder, MethodSMO:
	default:
		return fmt.Errorf("%w: unknown method %v", ErrInvalidParameter, d.Method)
	}
	if !positive(d.C) {
		return fmt.Errorf("%w: C must be positive and finite, got %g", ErrInvalidParameter, d.C)
	}
	if !positive(d.AccuracyThreshold) {
		return fmt.Errorf("%w: accuracy threshold must be positive and finite, got %g",
			ErrInvalidParameter, d.AccuracyThreshold)
	}
	if d.MaxIterationCount < 1 {
		return fmt.Errorf("%w: max iteration count must be at least 1, got %d",
			ErrInvalidParameter, d.MaxIterationCount)
	}
	if d.CacheSize < 0 {
		return fmt.Errorf("%w: cache size must be non-negative, got %d", ErrInvalidParameter, d.CacheSize)
	}
	if !positive(d.Tau) {
		return fmt.Errorf("%w: tau must be positive and finite, got %g", ErrInvalidParameter, d.Tau)
	}
	if d.WorkingSetSize < 0 || d.WorkingSetSize == 1 {
		return fmt.Errorf("%w: working set size must be 0 or at least 2, got %d",
			ErrInvalidParameter, d.WorkingSetSize)
	}
	if d.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must be non-negative, got %d", ErrInvalidParameter, d.NumWorkers)
	}
	return nil
}

func (d Descriptor) validateKernel() error {
	if d.Kernel == nil {
		return fmt.Errorf("%w: kernel is nil", ErrInvalidParameter)
	}
	return d.Kernel.Validate()
}

func (d Descriptor) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d Descriptor) parallelConfig() parallel.Config {
	return parallel.WithWorkers(d.NumWorkers)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
