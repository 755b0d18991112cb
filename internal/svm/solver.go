package svm

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/born-ml/dal/internal/parallel"
)

// solver owns the dual variables of one training run.
//
// The dual problem is
//
//	min  1/2 αᵀQα - eᵀα
//	s.t. yᵀα = 0,  0 <= α_i <= C_i
//
// with Q_ij = y_i y_j K(x_i, x_j). grad holds Qα - e for every row and is kept
// up to date after each accepted update.
type solver struct {
	p     *problem
	cache *rowCache
	par   parallel.Config
	log   *slog.Logger

	alpha []float64
	grad  []float64

	eps     float64
	tau     float64
	maxIter int
	iter    int
}

// strategy is a working-set method. optimize runs until convergence or until
// the iteration budget is spent and reports which one happened.
type strategy interface {
	optimize(s *solver) (converged bool, err error)
}

func newSolver(desc Descriptor, p *problem, cache *rowCache, par parallel.Config) *solver {
	s := &solver{
		p:       p,
		cache:   cache,
		par:     par,
		log:     desc.logger(),
		alpha:   make([]float64, p.n),
		grad:    make([]float64, p.n),
		eps:     desc.AccuracyThreshold,
		tau:     desc.Tau,
		maxIter: desc.MaxIterationCount,
	}
	for i := range s.grad {
		s.grad[i] = -1
	}
	return s
}

// inUp reports whether α_t can move in the direction that increases y_t α_t.
func (s *solver) inUp(t int) bool {
	if s.p.y[t] > 0 {
		return s.alpha[t] < s.p.c[t]
	}
	return s.alpha[t] > 0
}

// inLow reports whether α_t can move in the direction that decreases y_t α_t.
func (s *solver) inLow(t int) bool {
	if s.p.y[t] > 0 {
		return s.alpha[t] > 0
	}
	return s.alpha[t] < s.p.c[t]
}

// violation returns max_{I_up} -y_t G_t and max_{I_low} y_t G_t over idx,
// or over every row when idx is nil. Their sum is the KKT gap.
func (s *solver) violation(idx []int) (gmax, gmax2 float64) {
	gmax, gmax2 = math.Inf(-1), math.Inf(-1)
	visit := func(t int) {
		yg := s.p.y[t] * s.grad[t]
		if s.inUp(t) && -yg > gmax {
			gmax = -yg
		}
		if s.inLow(t) && yg > gmax2 {
			gmax2 = yg
		}
	}
	if idx == nil {
		for t := 0; t < s.p.n; t++ {
			visit(t)
		}
	} else {
		for _, t := range idx {
			visit(t)
		}
	}
	return gmax, gmax2
}

// bias returns b = -r, where r averages y_i G_i over free vectors. Without
// free vectors r is the midpoint of the interval allowed by bound vectors.
func (s *solver) bias() float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	var sum float64
	free := 0
	for t := 0; t < s.p.n; t++ {
		yg := s.p.y[t] * s.grad[t]
		switch {
		case s.alpha[t] >= s.p.c[t]:
			if s.p.y[t] < 0 {
				ub = min(ub, yg)
			} else {
				lb = max(lb, yg)
			}
		case s.alpha[t] <= 0:
			if s.p.y[t] > 0 {
				ub = min(ub, yg)
			} else {
				lb = max(lb, yg)
			}
		default:
			free++
			sum += yg
		}
	}

	var r float64
	switch {
	case free > 0:
		r = sum / float64(free)
	case math.IsInf(ub, 1) && math.IsInf(lb, -1):
		r = 0
	case math.IsInf(ub, 1):
		r = lb
	case math.IsInf(lb, -1):
		r = ub
	default:
		r = (ub + lb) / 2
	}
	return -r
}

// addToGradient applies G_t += y_t Σ_k y_{b_k} K(x_{b_k}, x_t) Δα_k for the
// rows b_k whose alpha changed by delta[k]. Each goroutine owns a disjoint
// range of t.
func (s *solver) addToGradient(rows [][]float64, block []int, delta []float64) {
	y := s.p.y
	parallel.For(s.p.n, func(t int) {
		var acc float64
		for k, d := range delta {
			if d != 0 {
				acc += y[block[k]] * rows[k][t] * d
			}
		}
		s.grad[t] += y[t] * acc
	}, s.par)
}

// checkFinite fails with ErrNumericalFailure when alpha or the gradient holds
// NaN or Inf.
func (s *solver) checkFinite() error {
	if !allFinite(s.alpha) {
		return fmt.Errorf("%w: non-finite alpha after %d iterations", ErrNumericalFailure, s.iter)
	}
	if !allFinite(s.grad) {
		return fmt.Errorf("%w: non-finite gradient after %d iterations", ErrNumericalFailure, s.iter)
	}
	return nil
}

// converged reports whether the full KKT gap is below the tolerance. The
// first update is always made, so a model never ends up without support
// vectors.
func (s *solver) converged(gmax, gmax2 float64) bool {
	return s.iter > 0 && gmax+gmax2 < s.eps
}
