// Package svm implements binary C-SVM training and inference.
//
// Train solves the dual quadratic program with one of two working-set
// methods:
//
//   - MethodThunder (default): blocks of up to 64 maximal violators, each
//     solved by capped projected gradient descent (exact projection onto the
//     box and the equality constraint) followed by local pair updates. One
//     block is one iteration.
//   - MethodSMO: one maximal-violating pair per iteration with second-order
//     selection, an analytic update and optional shrinking, after a first
//     block iteration as in thunder.
//
// Both methods stop when the KKT gap
//
//	max_{t in I_up} -y_t G_t + max_{t in I_low} y_t G_t
//
// falls below AccuracyThreshold. Labels are remapped by sorted order: the
// smaller label is the first class (-1), the larger the second class (+1).
//
// Every selection breaks ties toward the smaller row index, and parallel
// phases write disjoint slots only, so training is reproducible.
//
// Example:
//
//	x, _ := table.FromRows([][]float64{
//	    {-2, -1}, {-1, -1}, {-1, -2},
//	    {1, 1}, {1, 2}, {2, 1},
//	})
//	y := table.NewColumn([]float64{-1, -1, -1, 1, 1, 1})
//
//	desc := svm.NewDescriptor(kernel.NewLinear(1))
//	trained, err := svm.Train(desc, x, y, nil)
//	if err != nil {
//	    return err
//	}
//	out, err := svm.Infer(desc, trained.Model, x)
package svm
