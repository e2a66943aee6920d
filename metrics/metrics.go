// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus metrics of the data service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the data service
type Metrics struct {
	// Increments applied, by outcome
	Increments *prometheus.CounterVec

	// Sign-ins, by outcome
	SignIns *prometheus.CounterVec

	SignOuts prometheus.Counter

	// Open snapshot streams
	StreamSubscribers prometheus.Gauge

	// Snapshot events written to streams
	SnapshotsSent prometheus.Counter
}

// Outcome label values
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// New creates a Metrics instance with all metrics registered on registry
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Increments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livevote_increments_total",
				Help: "Total number of counter increment requests",
			},
			[]string{"outcome"},
		),
		SignIns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livevote_sign_ins_total",
				Help: "Total number of sign-in attempts",
			},
			[]string{"outcome"},
		),
		SignOuts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "livevote_sign_outs_total",
				Help: "Total number of sign-outs",
			},
		),
		StreamSubscribers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "livevote_stream_subscribers",
				Help: "Number of open options snapshot streams",
			},
		),
		SnapshotsSent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "livevote_snapshots_sent_total",
				Help: "Total number of snapshot events written to streams",
			},
		),
	}
}
