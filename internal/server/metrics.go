package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	Requests prometheus.Counter
	Errors   prometheus.Counter
	Latency  prometheus.Histogram
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fueladvisor",
			Subsystem: "recommend",
			Name:      "requests",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fueladvisor",
			Subsystem: "recommend",
			Name:      "errors",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fueladvisor",
			Subsystem: "recommend",
			Name:      "latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.Requests, m.Errors, m.Latency)

	return m
}
