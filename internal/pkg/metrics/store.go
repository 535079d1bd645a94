// Package metrics provides Prometheus metrics recording for the record stores.
// This package exists to avoid import cycles between repository and middleware packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// storeOpDuration tracks store operation duration in seconds
	storeOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postboard_store_operation_duration_seconds",
			Help:    "Store operation duration in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"store", "operation"},
	)

	// storeOpTotal tracks total store operations
	storeOpTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postboard_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"store", "operation"},
	)

	// storeMisses tracks lookups that ended in not found
	storeMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postboard_store_misses_total",
			Help: "Total number of store operations that found no record for the id",
		},
		[]string{"store", "operation"},
	)

	// storeRecords tracks the current number of records per store
	storeRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "postboard_store_records",
			Help: "Current number of records held by a store",
		},
		[]string{"store"},
	)
)

// RecordStoreOp records store operation metrics
func RecordStoreOp(store, operation string, duration time.Duration) {
	storeOpTotal.WithLabelValues(store, operation).Inc()
	storeOpDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// RecordStoreMiss records a not-found outcome
func RecordStoreMiss(store, operation string) {
	storeMisses.WithLabelValues(store, operation).Inc()
}

// SetStoreRecords sets the record count gauge for a store
func SetStoreRecords(store string, count int) {
	storeRecords.WithLabelValues(store).Set(float64(count))
}
