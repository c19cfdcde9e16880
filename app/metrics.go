// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package app

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "deviceregistry"

var (
	// ReconcileDropped counts twins without a primary record
	ReconcileDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "reconcile_dropped_total",
			Help:      "Number of twins dropped from a device page for lack of a primary record",
		},
	)
	// BatchItemFailures counts failed items of best-effort batch operations
	BatchItemFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "batch_item_failures_total",
			Help:      "Number of failed items in best-effort batch operations",
		},
		[]string{"operation"},
	)
	// EventsPublished counts device events by outcome
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "device_events_total",
			Help:      "Number of device events published on the message bus",
		},
		[]string{"type", "status"},
	)
)

var registerOnce sync.Once

// RegisterMetrics registers the App collectors with reg, once per process
func RegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			ReconcileDropped,
			BatchItemFailures,
			EventsPublished,
		)
	})
}
