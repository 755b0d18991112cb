// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides the kernel functions used by SVM training and
// inference.
//
// Two kernels are available:
//   - Linear: k(a, b) = Scale·⟨a, b⟩ + Shift
//   - RBF: k(a, b) = exp(-‖a - b‖² / (2σ²))
package kernel

import (
	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/parallel"
	"github.com/born-ml/dal/internal/table"
)

// ErrInvalidParameter reports a malformed kernel parameter.
var ErrInvalidParameter = kernel.ErrInvalidParameter

// Kernel is a positive semi-definite similarity function on feature rows.
type Kernel = kernel.Kernel

// Kind identifies a kernel function.
type Kind = kernel.Kind

// Kernel kinds.
const (
	KindLinear = kernel.KindLinear
	KindRBF    = kernel.KindRBF
)

// Linear is the scaled and shifted dot product kernel.
type Linear = kernel.Linear

// RBF is the Gaussian radial basis function kernel.
type RBF = kernel.RBF

// ParseKind maps "linear" or "rbf" to a Kind.
func ParseKind(name string) (Kind, error) {
	return kernel.ParseKind(name)
}

// NewLinear creates a linear kernel with the given scale and no shift.
func NewLinear(scale float64) Linear {
	return kernel.NewLinear(scale)
}

// NewRBF creates an RBF kernel with bandwidth sigma.
func NewRBF(sigma float64) RBF {
	return kernel.NewRBF(sigma)
}

// NewRBFGamma creates an RBF kernel from gamma = 1/(2σ²).
func NewRBFGamma(gamma float64) (RBF, error) {
	return kernel.NewRBFGamma(gamma)
}

// Compute returns the x.RowCount() × y.RowCount() kernel matrix, evaluated
// with workers goroutines (0 means one per CPU).
func Compute(k Kernel, x, y table.Table, workers int) (*table.Homogen, error) {
	return kernel.Compute(k, x, y, parallel.WithWorkers(workers))
}
