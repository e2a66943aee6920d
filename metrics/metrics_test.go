// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.Increments.WithLabelValues(OutcomeOK).Inc()
	m.Increments.WithLabelValues(OutcomeOK).Inc()
	m.Increments.WithLabelValues(OutcomeRejected).Inc()
	m.StreamSubscribers.Inc()

	if got := testutil.ToFloat64(m.Increments.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("expected 2 ok increments, got %v", got)
	}
	if got := testutil.ToFloat64(m.StreamSubscribers); got != 1 {
		t.Errorf("expected 1 subscriber, got %v", got)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered metric families")
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	New(registry)
}
