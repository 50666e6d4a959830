// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smt

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsState holds the package's Prometheus collectors. They are created
// and registered only by RegisterMetrics, and observe does nothing until
// then, so importing this package without a Prometheus registry -- the
// common case in unit tests -- costs nothing and panics nothing.
var metricsState = struct {
	ops      *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	registry prometheus.Registerer
}{}

// RegisterMetrics installs this package's collectors into reg. Call it once
// at process startup (e.g. from cmd/smtserver) before serving traffic; it
// is safe to call with a registry that already has the collectors (repeat
// registrations are ignored).
func RegisterMetrics(reg prometheus.Registerer) {
	if metricsState.ops != nil {
		return
	}
	metricsState.ops = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smt",
		Name:      "operations_total",
		Help:      "Count of sparse Merkle tree operations by name and outcome.",
	}, []string{"op", "outcome"})
	metricsState.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smt",
		Name:      "operation_duration_seconds",
		Help:      "Latency of sparse Merkle tree operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
	reg.MustRegister(metricsState.ops, metricsState.latency)
}

// observe records one call to op, started at start, with the given error
// (nil on success). It's a no-op until RegisterMetrics has been called.
func observe(op string, start time.Time, err error) {
	if metricsState.ops == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metricsState.ops.WithLabelValues(op, outcome).Inc()
	metricsState.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
