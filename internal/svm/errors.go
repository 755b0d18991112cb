package svm

import (
	"errors"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/table"
)

// Common errors.
//
// ErrInvalidParameter and ErrDimensionMismatch are the same values exported
// by the kernel and table packages, so errors.Is matches across layers.
var (
	ErrInvalidParameter  = kernel.ErrInvalidParameter
	ErrDimensionMismatch = table.ErrDimensionMismatch
	ErrSingleClassLabel  = errors.New("training labels contain a single class")
	ErrDidNotConverge    = errors.New("solver did not converge")
	ErrNumericalFailure  = errors.New("numerical failure")
)
