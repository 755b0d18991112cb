package svm

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

const (
	// defaultBlockSize is the thunder block used when WorkingSetSize is 0.
	defaultBlockSize = 64

	// powerSteps is the number of power-iteration steps used to estimate the
	// largest eigenvalue of the block Hessian.
	powerSteps = 30

	// maxHalvings bounds the step-size backtracking of one block solve.
	maxHalvings = 60

	// Inner step caps of one block solve, per block row.
	gradientStepsPerRow = 10
	pairStepsPerRow     = 100
)

// thunder is the block working-set method. Each outer iteration picks up to
// size maximal violators, half from I_up and half from I_low, and solves the
// subproblem restricted to them: a few projected gradient steps, then pair
// updates on the block until its local gap is small. The global gradient is
// updated once per block from the block's kernel rows.
type thunder struct {
	size int // 0 selects defaultBlockSize
}

func (m thunder) blockSize(n int) int {
	q := m.size
	if q == 0 {
		q = defaultBlockSize
	}
	return max(2, min(q, n))
}

func (m thunder) optimize(s *solver) (bool, error) {
	q := m.blockSize(s.p.n)
	rows := kernelRows(q, s.p.n)

	for s.iter < s.maxIter {
		gmax, gmax2 := s.violation(nil)
		if s.converged(gmax, gmax2) {
			return true, nil
		}
		gap := gmax + gmax2

		block := s.selectBlock(q)
		steps := s.solveBlock(block, rows[:len(block)], max(s.eps, 0.1*gap), s.iter == 0, pairStepsPerRow*len(block))
		s.iter++
		if err := s.checkFinite(); err != nil {
			return false, err
		}
		if steps == 0 {
			s.log.Debug("svm: thunder block made no progress",
				slog.Int("iterations", s.iter), slog.Float64("gap", gap), slog.Int("block", len(block)))
			return false, nil
		}
	}

	gmax, gmax2 := s.violation(nil)
	return gmax+gmax2 < s.eps, nil
}

func kernelRows(q, n int) [][]float64 {
	rows := make([][]float64, q)
	for k := range rows {
		rows[k] = make([]float64, n)
	}
	return rows
}

// selectBlock fills a block of at most q rows alternately from I_up sorted by
// -y_t G_t descending and I_low sorted by y_t G_t descending. Ties keep the
// smaller row index. The block is returned in ascending row order.
func (s *solver) selectBlock(q int) []int {
	n := s.p.n
	yg := make([]float64, n)
	var up, low []int
	for t := 0; t < n; t++ {
		yg[t] = s.p.y[t] * s.grad[t]
		if s.inUp(t) {
			up = append(up, t)
		}
		if s.inLow(t) {
			low = append(low, t)
		}
	}
	slices.SortStableFunc(up, func(a, b int) int { return cmp.Compare(yg[a], yg[b]) })
	slices.SortStableFunc(low, func(a, b int) int { return cmp.Compare(yg[b], yg[a]) })

	block := make([]int, 0, q)
	seen := make([]bool, n)
	pu, pl := 0, 0
	for len(block) < q && (pu < len(up) || pl < len(low)) {
		var t int
		if (len(block)%2 == 0 && pu < len(up)) || pl >= len(low) {
			t = up[pu]
			pu++
		} else {
			t = low[pl]
			pl++
		}
		if !seen[t] {
			seen[t] = true
			block = append(block, t)
		}
	}
	slices.Sort(block)
	return block
}

// solveBlock minimizes the dual over the rows in block with every other alpha
// fixed, stopping when the block's KKT gap drops below localEps. rows receives
// the kernel rows of the block. When force is set the first step is taken
// regardless of the gap. At most maxPairs pair updates follow the gradient
// phase. It returns the number of inner steps taken.
func (s *solver) solveBlock(block []int, rows [][]float64, localEps float64, force bool, maxPairs int) int {
	for k, t := range block {
		s.cache.row(t, rows[k])
	}
	sub := newSubproblem(s, block, rows)
	start := slices.Clone(sub.alpha)

	steps := sub.gradientSteps(localEps, force, gradientStepsPerRow*len(block))
	steps += sub.pairSteps(localEps, force && steps == 0, maxPairs)

	delta := make([]float64, len(block))
	for k, t := range block {
		delta[k] = sub.alpha[k] - start[k]
		s.alpha[t] = sub.alpha[k]
	}
	s.addToGradient(rows, block, delta)
	return steps
}

// subproblem is a local copy of the dual restricted to one block. grad is
// kept in step with alpha and Σ y_k alpha_k stays equal to target.
type subproblem struct {
	y, c, alpha, grad []float64
	q                 *mat.SymDense // y_a y_b K(x_a, x_b)
	target            float64
	tau               float64
}

func newSubproblem(s *solver, block []int, rows [][]float64) *subproblem {
	m := len(block)
	sub := &subproblem{
		y:     make([]float64, m),
		c:     make([]float64, m),
		alpha: make([]float64, m),
		grad:  make([]float64, m),
		q:     mat.NewSymDense(m, nil),
		tau:   s.tau,
	}
	for k, t := range block {
		sub.y[k], sub.c[k], sub.alpha[k], sub.grad[k] = s.p.y[t], s.p.c[t], s.alpha[t], s.grad[t]
		sub.target += sub.y[k] * sub.alpha[k]
	}
	for a := 0; a < m; a++ {
		for b := a; b < m; b++ {
			sub.q.SetSym(a, b, sub.y[a]*sub.y[b]*rows[a][block[b]])
		}
	}
	return sub
}

func (sub *subproblem) inUp(k int) bool {
	return (sub.y[k] > 0 && sub.alpha[k] < sub.c[k]) || (sub.y[k] < 0 && sub.alpha[k] > 0)
}

func (sub *subproblem) inLow(k int) bool {
	return (sub.y[k] > 0 && sub.alpha[k] > 0) || (sub.y[k] < 0 && sub.alpha[k] < sub.c[k])
}

// gap is solver.violation summed over the block.
func (sub *subproblem) gap() float64 {
	gmax, gmax2 := math.Inf(-1), math.Inf(-1)
	for k := range sub.y {
		yg := sub.y[k] * sub.grad[k]
		if sub.inUp(k) && -yg > gmax {
			gmax = -yg
		}
		if sub.inLow(k) && yg > gmax2 {
			gmax2 = yg
		}
	}
	return gmax + gmax2
}

// gradientSteps runs projected gradient descent with step 1/λ_max, halving
// the step whenever the quadratic model overshoots. It returns the number of
// accepted steps, at most limit.
func (sub *subproblem) gradientSteps(localEps float64, force bool, limit int) int {
	m := len(sub.y)
	eta := 1.0
	if lambda := largestEigenvalue(sub.q); lambda > 0 {
		eta = 1 / lambda
	}

	z := make([]float64, m)
	next := make([]float64, m)
	d := mat.NewVecDense(m, nil)
	qd := mat.NewVecDense(m, nil)
	steps, halvings := 0, 0
	for steps < limit {
		if (!force || steps > 0) && sub.gap() < localEps {
			break
		}

		for k := range z {
			z[k] = sub.alpha[k] - eta*sub.grad[k]
		}
		project(next, z, sub.y, sub.c, sub.target)

		var dd float64
		for k := range next {
			dk := next[k] - sub.alpha[k]
			d.SetVec(k, dk)
			dd += dk * dk
		}
		if dd == 0 {
			break
		}

		qd.MulVec(sub.q, d)
		if dqd := mat.Dot(d, qd); dqd > dd/eta*(1+1e-12) {
			eta /= 2
			if halvings++; halvings > maxHalvings {
				break
			}
			continue
		}

		copy(sub.alpha, next)
		for k := range sub.grad {
			sub.grad[k] += qd.AtVec(k)
		}
		steps++
	}
	return steps
}

// pairSteps runs second-order pair updates, as smo does, on the block. It
// returns the number of updates, at most limit.
func (sub *subproblem) pairSteps(localEps float64, force bool, limit int) int {
	steps := 0
	for steps < limit {
		if (!force || steps > 0) && sub.gap() < localEps {
			break
		}
		i, j := sub.selectPair()
		if j < 0 {
			break
		}

		quad := sub.q.At(i, i) + sub.q.At(j, j) - 2*sub.y[i]*sub.y[j]*sub.q.At(i, j)
		if quad <= 0 {
			quad = sub.tau
		}
		di, dj := clipPair(sub.y, sub.c, sub.alpha, sub.grad, i, j, quad)
		for k := range sub.grad {
			sub.grad[k] += sub.q.At(k, i)*di + sub.q.At(k, j)*dj
		}
		steps++
	}
	return steps
}

// selectPair is selectFirst and selectSecond over the block. j is -1 when no
// violating pair is left.
func (sub *subproblem) selectPair() (int, int) {
	i, gmax := -1, math.Inf(-1)
	for k := range sub.y {
		if sub.inUp(k) {
			if v := -sub.y[k] * sub.grad[k]; v > gmax {
				i, gmax = k, v
			}
		}
	}
	if i < 0 {
		return -1, -1
	}

	j, best := -1, math.Inf(1)
	for k := range sub.y {
		if !sub.inLow(k) {
			continue
		}
		b := gmax + sub.y[k]*sub.grad[k]
		if b <= 0 {
			continue
		}
		a := sub.q.At(i, i) + sub.q.At(k, k) - 2*sub.y[i]*sub.y[k]*sub.q.At(i, k)
		if a <= 0 {
			a = sub.tau
		}
		if obj := -b * b / a; obj < best {
			j, best = k, obj
		}
	}
	return i, j
}

// largestEigenvalue estimates the dominant eigenvalue of the positive
// semidefinite matrix q by power iteration.
func largestEigenvalue(q *mat.SymDense) float64 {
	m := q.SymmetricDim()
	v := mat.NewVecDense(m, nil)
	for k := 0; k < m; k++ {
		v.SetVec(k, 1)
	}
	w := mat.NewVecDense(m, nil)

	var lambda float64
	for step := 0; step < powerSteps; step++ {
		w.MulVec(q, v)
		norm := mat.Norm(w, 2)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			return 0
		}
		lambda = norm / mat.Norm(v, 2)
		v.ScaleVec(1/norm, w)
	}
	return lambda
}
