// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics exports SVM training and inference statistics to
// Prometheus.
//
// Example:
//
//	reg := metrics.NewRegistry()
//	collector, err := metrics.NewCollector(reg)
//	desc := svm.NewDescriptor(kernel.NewLinear(1))
//	desc.Observer = collector
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/born-ml/dal/internal/metrics"
)

// Collector implements svm.Observer on top of Prometheus metric vectors.
type Collector = metrics.Collector

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	return metrics.NewRegistry()
}

// NewCollector creates the SVM metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	return metrics.NewCollector(reg)
}
