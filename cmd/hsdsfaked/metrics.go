// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/Apollo3zehn/hsds-api-sub001/hsdsfake"
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
)

var objectCounts = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "hsds",
		Subsystem: "fake",
		Name:      "objects",
		Help:      "Number of domains and objects held in memory",
	},
	[]string{
		"kind",
	},
)

func init() {
	prometheus.MustRegister(objectCounts)
}

// record copies the store's current counts into the gauges.
func record(store *hsdsfake.Store) {
	for kind, count := range store.Counts() {
		objectCounts.With(prometheus.Labels{
			"kind": kind,
		}).Set(float64(count))
	}
}

// observe refreshes the gauges every interval, forever.
func observe(store *hsdsfake.Store, clk clock.Clock, interval time.Duration) {
	record(store)
	ticker := clk.Ticker(interval)
	defer ticker.Stop()
	for range ticker.C {
		record(store)
	}
}
