// Package metrics exports SVM training and inference statistics to
// Prometheus.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/born-ml/dal/internal/svm"
)

const namespace = "dal_svm"

// Collector records svm.TrainStats and svm.InferStats as Prometheus metrics.
// It implements svm.Observer and is safe for concurrent use.
type Collector struct {
	TrainRuns       *prometheus.CounterVec   // by method, kernel, converged
	TrainIterations *prometheus.CounterVec   // by method
	TrainDuration   *prometheus.HistogramVec // by method
	SupportVectors  *prometheus.GaugeVec     // last run, by method
	CacheRequests   *prometheus.CounterVec   // kernel rows, by result (hit, miss)
	InferRows       *prometheus.CounterVec   // by kernel
	InferDuration   *prometheus.HistogramVec // by kernel
}

var _ svm.Observer = (*Collector)(nil)

// NewRegistry returns a registry with the Go runtime and process collectors
// already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// NewCollector creates the SVM metrics and registers them with reg.
//
// Example:
//
//	reg := metrics.NewRegistry()
//	c, err := metrics.NewCollector(reg)
//	desc := svm.NewDescriptor(kernel.NewRBF(1))
//	desc.Observer = c
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		TrainRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "train_runs_total",
			Help:      "Number of finished training calls.",
		}, []string{"method", "kernel", "converged"}),
		TrainIterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "train_iterations_total",
			Help:      "Solver iterations spent in training calls.",
		}, []string{"method"}),
		TrainDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "train_duration_seconds",
			Help:      "Wall time of training calls in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"method"}),
		SupportVectors: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "support_vectors",
			Help:      "Support vector count of the last trained model.",
		}, []string{"method"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kernel_cache_requests_total",
			Help:      "Kernel row requests during training.",
		}, []string{"result"}),
		InferRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "infer_rows_total",
			Help:      "Query rows evaluated by inference calls.",
		}, []string{"kernel"}),
		InferDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "infer_duration_seconds",
			Help:      "Wall time of inference calls in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kernel"}),
	}

	for _, m := range []prometheus.Collector{
		c.TrainRuns, c.TrainIterations, c.TrainDuration, c.SupportVectors,
		c.CacheRequests, c.InferRows, c.InferDuration,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return c, nil
}

// ObserveTrain implements svm.Observer.
func (c *Collector) ObserveTrain(s svm.TrainStats) {
	method := s.Method.String()
	c.TrainRuns.WithLabelValues(method, s.Kernel.String(), strconv.FormatBool(s.Converged)).Inc()
	c.TrainIterations.WithLabelValues(method).Add(float64(s.Iterations))
	c.TrainDuration.WithLabelValues(method).Observe(s.Duration.Seconds())
	c.SupportVectors.WithLabelValues(method).Set(float64(s.SupportVectors))
	c.CacheRequests.WithLabelValues("hit").Add(float64(s.CacheHits))
	c.CacheRequests.WithLabelValues("miss").Add(float64(s.CacheMisses))
}

// ObserveInfer implements svm.Observer.
func (c *Collector) ObserveInfer(s svm.InferStats) {
	kind := s.Kernel.String()
	c.InferRows.WithLabelValues(kind).Add(float64(s.Rows))
	c.InferDuration.WithLabelValues(kind).Observe(s.Duration.Seconds())
}
