// Package kernel implements the kernel functions used by the SVM solver and
// evaluator: linear and radial basis function (RBF).
//
// Kernels are pure, symmetric functions of two feature rows. The set of
// kernels is closed; callers switch on Kind when they need to.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidParameter reports a malformed hyperparameter.
var ErrInvalidParameter = errors.New("invalid parameter")

// Kind identifies a kernel variant.
type Kind int

// Kernel kinds.
const (
	KindLinear Kind = iota
	KindRBF
)

// String returns the kernel kind name.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindRBF:
		return "rbf"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a kernel name ("linear", "rbf") to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "linear":
		return KindLinear, nil
	case "rbf":
		return KindRBF, nil
	default:
		return 0, fmt.Errorf("%w: unknown kernel %q", ErrInvalidParameter, name)
	}
}

// Kernel computes a similarity value between two feature rows of equal length.
type Kernel interface {
	// Compute returns k(a, b).
	Compute(a, b []float64) float64

	// Kind returns the kernel variant.
	Kind() Kind

	// Validate reports malformed parameters as ErrInvalidParameter.
	Validate() error
}

// Linear is the kernel k(a, b) = Scale * <a, b> + Shift.
type Linear struct {
	Scale float64 // Multiplier of the inner product (default: 1.0, must be > 0)
	Shift float64 // Additive term (default: 0.0, must be >= 0)
}

// NewLinear creates a linear kernel with the given scale and no shift.
func NewLinear(scale float64) Linear {
	return Linear{Scale: scale}
}

// Compute returns Scale * dot(a, b) + Shift.
func (l Linear) Compute(a, b []float64) float64 {
	return l.Scale*floats.Dot(a, b) + l.Shift
}

// Kind returns KindLinear.
func (Linear) Kind() Kind { return KindLinear }

// Validate checks that Scale is positive and Shift non-negative.
func (l Linear) Validate() error {
	if !(l.Scale > 0) || math.IsInf(l.Scale, 0) {
		return fmt.Errorf("%w: linear kernel scale must be positive and finite, got %g", ErrInvalidParameter, l.Scale)
	}
	if !(l.Shift >= 0) || math.IsInf(l.Shift, 0) {
		return fmt.Errorf("%w: linear kernel shift must be non-negative and finite, got %g", ErrInvalidParameter, l.Shift)
	}
	return nil
}

// RBF is the Gaussian kernel k(a, b) = exp(-||a - b||^2 / (2 * Sigma^2)).
type RBF struct {
	Sigma float64 // Bandwidth (default: 1.0, must be > 0)
}

// NewRBF creates an RBF kernel with the given bandwidth.
func NewRBF(sigma float64) RBF {
	return RBF{Sigma: sigma}
}

// NewRBFGamma creates the RBF kernel exp(-gamma * ||a - b||^2).
// Returns ErrInvalidParameter for a non-positive gamma.
func NewRBFGamma(gamma float64) (RBF, error) {
	if !(gamma > 0) || math.IsInf(gamma, 0) {
		return RBF{}, fmt.Errorf("%w: rbf gamma must be positive and finite, got %g", ErrInvalidParameter, gamma)
	}
	return RBF{Sigma: math.Sqrt(1 / (2 * gamma))}, nil
}

// Gamma returns the equivalent gamma coefficient 1 / (2 * Sigma^2).
func (r RBF) Gamma() float64 {
	return 1 / (2 * r.Sigma * r.Sigma)
}

// Compute returns exp(-||a - b||^2 * Gamma()). The result lies in (0, 1].
func (r RBF) Compute(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-d * d * r.Gamma())
}

// Kind returns KindRBF.
func (RBF) Kind() Kind { return KindRBF }

// Validate checks that Sigma is positive and finite.
func (r RBF) Validate() error {
	if !(r.Sigma > 0) || math.IsInf(r.Sigma, 0) {
		return fmt.Errorf("%w: rbf sigma must be positive and finite, got %g", ErrInvalidParameter, r.Sigma)
	}
	return nil
}
