package svm

import "slices"

// project writes into dst the Euclidean projection of z onto
//
//	{a : 0 <= a_k <= c_k, Σ y_k a_k = target},  y_k ∈ {-1, +1}.
//
// The projection has the form a_k(ν) = clip(z_k + ν y_k, 0, c_k) where ν is
// the root of h(ν) = Σ y_k a_k(ν) - target. h is nondecreasing and piecewise
// linear with breakpoints where a term reaches a bound, so ν is found by a
// binary search over the sorted breakpoints and one linear interpolation.
func project(dst, z, y, c []float64, target float64) {
	bps := make([]float64, 0, 2*len(z))
	for k := range z {
		bps = append(bps, -z[k]*y[k], (c[k]-z[k])*y[k])
	}
	slices.Sort(bps)
	bps = slices.Compact(bps)

	h := func(nu float64) float64 {
		var sum float64
		for k := range z {
			dst[k] = min(max(z[k]+nu*y[k], 0), c[k])
			sum += y[k] * dst[k]
		}
		return sum - target
	}

	lo, hi := 0, len(bps)-1
	hlo := h(bps[lo])
	if hlo >= 0 {
		return
	}
	hhi := h(bps[hi])
	if hhi <= 0 {
		return
	}
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if hm := h(bps[mid]); hm >= 0 {
			hi, hhi = mid, hm
		} else {
			lo, hlo = mid, hm
		}
	}
	h(bps[lo] + (bps[hi]-bps[lo])*(-hlo)/(hhi-hlo))
}
