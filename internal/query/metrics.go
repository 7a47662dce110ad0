// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/trait-explorer/pkg/types"
)

// Search outcomes recorded by Metrics.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics counts searches and their latency per backend.
type Metrics struct {
	searches *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the search collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trait_explorer_searches_total",
			Help: "Searches answered by the query service, by backend and outcome.",
		}, []string{"backend", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trait_explorer_search_duration_seconds",
			Help:    "Query service latency, by backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
	}
	reg.MustRegister(m.searches, m.duration)
	return m
}

// Wrap returns a Service that records every call to svc under backend.
func (m *Metrics) Wrap(svc Service, backend string) Service {
	return &instrumented{next: svc, backend: backend, metrics: m}
}

type instrumented struct {
	next    Service
	backend string
	metrics *Metrics
}

func (s *instrumented) Search(ctx context.Context, params types.SearchParams) (types.ResearchResult, error) {
	start := time.Now()
	result, err := s.next.Search(ctx, params)
	s.metrics.duration.WithLabelValues(s.backend).Observe(time.Since(start).Seconds())

	outcome := OutcomeFound
	switch {
	case err != nil:
		outcome = OutcomeError
	case result.Total() == 0:
		outcome = OutcomeEmpty
	}
	s.metrics.searches.WithLabelValues(s.backend, outcome).Inc()
	return result, err
}
