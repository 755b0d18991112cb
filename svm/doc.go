// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package svm trains binary support vector machines and evaluates their
// decision function.
//
// # Training
//
// Train solves the C-SVM dual problem with one of two working-set
// strategies:
//   - MethodThunder (default): blocks of violating variables solved by
//     projected gradient and local pair steps
//   - MethodSMO: pairwise sequential minimal optimization with second-order
//     selection and optional shrinking
//
// Kernel rows are memoized in a bounded cache (Descriptor.CacheSize, in
// megabytes) that lives for one Train call.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dal/kernel"
//	    "github.com/born-ml/dal/svm"
//	    "github.com/born-ml/dal/table"
//	)
//
//	func main() {
//	    x, _ := table.FromRows([][]float64{{-2, -1}, {-1, -2}, {1, 1}, {2, 1}})
//	    y := table.NewColumn([]float64{0, 0, 1, 1})
//
//	    desc := svm.NewDescriptor(kernel.NewLinear(1))
//	    trained, err := svm.Train(desc, x, y, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if trained.Warning != nil {
//	        log.Print(trained.Warning) // iteration budget exhausted
//	    }
//
//	    result, _ := svm.Infer(desc, trained.Model, x)
//	    fmt.Println(result.Labels) // [0 0 1 1]
//	}
//
// # Metrics
//
// Set Descriptor.Observer to a metrics.Collector to export run statistics
// to Prometheus.
package svm
