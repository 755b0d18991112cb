package svm

import "math"

// smo is the pair working-set method with second-order selection
// (Fan, Chen & Lin, "Working Set Selection Using Second Order Information
// for Training SVM", JMLR 2005).
type smo struct {
	shrinking bool
}

func (m smo) optimize(s *solver) (bool, error) {
	if err := s.seed(); err != nil {
		return false, err
	}

	n := s.p.n
	ki := make([]float64, n)
	kj := make([]float64, n)
	rows := [][]float64{ki, kj}
	pair := make([]int, 2)
	delta := make([]float64, 2)

	active := allRows(n)
	unshrunk := false
	interval := min(n, 1000)
	counter := interval

	for s.iter < s.maxIter {
		if m.shrinking {
			if counter--; counter == 0 {
				counter = interval
				active = s.shrink(active, &unshrunk)
			}
		}

		i, gmax := s.selectFirst(active)
		j, gmax2 := -1, math.Inf(-1)
		if i >= 0 {
			s.cache.row(i, ki)
			j, gmax2 = s.selectSecond(active, i, gmax, ki)
		}
		if j < 0 || s.converged(gmax, gmax2) {
			if len(active) < n {
				// Optimal on the active set only: re-check every row.
				active = allRows(n)
				counter = interval
				continue
			}
			return true, nil
		}

		s.cache.row(j, kj)
		pair[0], pair[1] = i, j
		delta[0], delta[1] = s.updatePair(i, j, ki[j])
		s.addToGradient(rows, pair, delta)
		s.iter++

		if !allFinite([]float64{s.alpha[i], s.alpha[j], s.grad[i], s.grad[j]}) {
			return false, s.checkFinite()
		}
	}

	gmax, gmax2 := s.violation(nil)
	return gmax+gmax2 < s.eps, nil
}

// selectFirst returns i = argmax_{t in I_up} -y_t G_t. Ties keep the smaller
// row index.
func (s *solver) selectFirst(active []int) (int, float64) {
	i, gmax := -1, math.Inf(-1)
	for _, t := range active {
		if !s.inUp(t) {
			continue
		}
		if v := -s.p.y[t] * s.grad[t]; v > gmax {
			i, gmax = t, v
		}
	}
	return i, gmax
}

// selectSecond returns the j in I_low that minimizes -b²/a, the second-order
// estimate of the objective decrease for the pair (i, j), together with
// max_{I_low} y_t G_t. ki is the kernel row of i.
func (s *solver) selectSecond(active []int, i int, gmax float64, ki []float64) (int, float64) {
	j, gmax2 := -1, math.Inf(-1)
	best := math.Inf(1)
	diag := s.cache.diag
	for _, t := range active {
		if !s.inLow(t) {
			continue
		}
		yg := s.p.y[t] * s.grad[t]
		if yg > gmax2 {
			gmax2 = yg
		}
		b := gmax + yg
		if b <= 0 {
			continue
		}
		a := diag[i] + diag[t] - 2*ki[t]
		if a <= 0 {
			a = s.tau
		}
		if obj := -b * b / a; obj < best {
			j, best = t, obj
		}
	}
	return j, gmax2
}

// seed spends the first iteration on a projected gradient solve over a block
// of maximal violators. Pair updates from zero stop at a vertex of the
// optimal face, and when the optimum is not unique that vertex drops
// vectors the block solution keeps.
func (s *solver) seed() error {
	gmax, gmax2 := s.violation(nil)
	block := s.selectBlock(thunder{}.blockSize(s.p.n))
	s.solveBlock(block, kernelRows(len(block), s.p.n), max(s.eps, 0.1*(gmax+gmax2)), true, 0)
	s.iter++
	return s.checkFinite()
}

// updatePair solves the two-variable subproblem for (i, j) analytically,
// clips the result to the box and returns the change of each alpha.
func (s *solver) updatePair(i, j int, kij float64) (float64, float64) {
	quad := s.cache.diag[i] + s.cache.diag[j] - 2*kij
	if quad <= 0 {
		quad = s.tau
	}
	return clipPair(s.p.y, s.p.c, s.alpha, s.grad, i, j, quad)
}

// clipPair moves a[i] and a[j] to the unconstrained pair optimum along the
// equality constraint, clips them to [0, c] and returns their change. quad
// is K_ii + K_jj - 2K_ij, already replaced by tau when not positive.
func clipPair(y, c, a, g []float64, i, j int, quad float64) (float64, float64) {
	ci, cj := c[i], c[j]
	oldI, oldJ := a[i], a[j]

	if y[i] != y[j] {
		d := (-g[i] - g[j]) / quad
		diff := a[i] - a[j]
		a[i] += d
		a[j] += d
		if diff > 0 {
			if a[j] < 0 {
				a[j] = 0
				a[i] = diff
			}
		} else if a[i] < 0 {
			a[i] = 0
			a[j] = -diff
		}
		if diff > ci-cj {
			if a[i] > ci {
				a[i] = ci
				a[j] = ci - diff
			}
		} else if a[j] > cj {
			a[j] = cj
			a[i] = cj + diff
		}
	} else {
		d := (g[i] - g[j]) / quad
		sum := a[i] + a[j]
		a[i] -= d
		a[j] += d
		if sum > ci {
			if a[i] > ci {
				a[i] = ci
				a[j] = sum - ci
			}
		} else if a[j] < 0 {
			a[j] = 0
			a[i] = sum
		}
		if sum > cj {
			if a[j] > cj {
				a[j] = cj
				a[i] = sum - cj
			}
		} else if a[i] < 0 {
			a[i] = 0
			a[j] = sum
		}
	}

	return a[i] - oldI, a[j] - oldJ
}

// shrink drops rows that are at a bound and cannot join a violating pair
// under the current gradient. The first time the gap gets within 10·eps the
// active set is reset to every row before shrinking again.
func (s *solver) shrink(active []int, unshrunk *bool) []int {
	gmax, gmax2 := s.violation(active)
	if !*unshrunk && gmax+gmax2 <= 10*s.eps {
		*unshrunk = true
		active = allRows(s.p.n)
		gmax, gmax2 = s.violation(nil)
	}

	kept := active[:0]
	for _, t := range active {
		if !s.shrinkable(t, gmax, gmax2) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (s *solver) shrinkable(t int, gmax, gmax2 float64) bool {
	g := s.grad[t]
	switch {
	case s.alpha[t] >= s.p.c[t]:
		if s.p.y[t] > 0 {
			return -g > gmax
		}
		return -g > gmax2
	case s.alpha[t] <= 0:
		if s.p.y[t] > 0 {
			return g > gmax2
		}
		return g > gmax
	default:
		return false
	}
}

func allRows(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
