/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package monitoring holds the operator's prometheus collectors.
//
// They complement the generic controller-runtime metrics (reconcile counts,
// work queue depth) with the outcome classes the MyWorkLoad error policy
// knows about. All collectors live on the controller-runtime registry and
// are served by the manager's metrics server.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	reconciliationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "myworkload_controller_reconciliations_total",
			Help: "Total number of MyWorkLoad reconciliation attempts.",
		},
	)

	reconcileFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "myworkload_controller_reconcile_failures_total",
			Help: "Failed MyWorkLoad reconciliations by error class.",
		},
		[]string{"class"},
	)

	reconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "myworkload_controller_reconcile_duration_seconds",
			Help:    "Duration of MyWorkLoad reconciliations in seconds.",
			Buckets: []float64{0.01, 0.1, 0.25, 0.5, 1, 5, 15, 60},
		},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all operator collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		reconciliationsTotal,
		reconcileFailuresTotal,
		reconcileDuration,
	}
}
