// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package svm

import (
	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/svm"
	"github.com/born-ml/dal/internal/table"
)

// Errors returned by Train, Infer and NewModel. Match them with errors.Is.
var (
	ErrInvalidParameter  = svm.ErrInvalidParameter
	ErrDimensionMismatch = svm.ErrDimensionMismatch
	ErrSingleClassLabel  = svm.ErrSingleClassLabel
	ErrDidNotConverge    = svm.ErrDidNotConverge
	ErrNumericalFailure  = svm.ErrNumericalFailure
)

// Method selects the working-set strategy of the optimizer.
type Method = svm.Method

// Optimizer methods.
const (
	MethodThunder = svm.MethodThunder
	MethodSMO     = svm.MethodSMO
)

// Default hyperparameters.
const (
	DefaultC                 = svm.DefaultC
	DefaultAccuracyThreshold = svm.DefaultAccuracyThreshold
	DefaultMaxIterationCount = svm.DefaultMaxIterationCount
	DefaultCacheSize         = svm.DefaultCacheSize
	DefaultTau               = svm.DefaultTau
)

// Descriptor holds the hyperparameters shared by Train and Infer.
type Descriptor = svm.Descriptor

// Observer receives statistics of finished Train and Infer calls.
type Observer = svm.Observer

// TrainStats describes a finished training call.
type TrainStats = svm.TrainStats

// InferStats describes a finished inference call.
type InferStats = svm.InferStats

// Model is a trained binary classifier.
type Model = svm.Model

// TrainResult is the outcome of Train.
type TrainResult = svm.TrainResult

// InferResult holds decision values and predicted labels.
type InferResult = svm.InferResult

// ParseMethod maps "thunder" or "smo" to a Method.
func ParseMethod(name string) (Method, error) {
	return svm.ParseMethod(name)
}

// NewDescriptor creates a descriptor for k with default hyperparameters.
//
// Example:
//
//	desc := svm.NewDescriptor(kernel.NewRBF(0.5))
//	desc.C = 10
//	desc.Method = svm.MethodSMO
func NewDescriptor(k Kernel) Descriptor {
	return svm.NewDescriptor(k)
}

// Train fits a binary C-SVM classifier. weights may be nil.
func Train(desc Descriptor, data, labels, weights table.Table) (*TrainResult, error) {
	return svm.Train(desc, data, labels, weights)
}

// Infer evaluates model on every row of data.
func Infer(desc Descriptor, model *Model, data table.Table) (*InferResult, error) {
	return svm.Infer(desc, model, data)
}

// NewModel restores a model from its parts, e.g. after loading it from
// storage. Infer rejects descriptors whose kernel is not of kind.
func NewModel(kind kernel.Kind, supportVectors table.Table, indices []int, coeffs []float64,
	bias, firstClass, secondClass float64) (*Model, error) {
	return svm.NewModel(kind, supportVectors, indices, coeffs, bias, firstClass, secondClass)
}

// Kernel is the kernel function interface accepted by NewDescriptor.
type Kernel = kernel.Kernel
