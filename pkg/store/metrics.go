package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slurmdocs_store_operations_total",
			Help: "Total number of record store operations",
		},
		[]string{"operation", "status"}, // status: success or error
	)

	storeCoverageRatio = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slurmdocs_store_coverage_ratio",
			Help: "Fraction of snapshot nodes with a stored cpu artifact, per database",
		},
		[]string{"database"},
	)
)

// observe records the outcome of an operation and passes err through.
func observe(operation string, err error) error {
	status := "success"
	if err != nil {
		status = "error"
	}
	storeOperationTotal.WithLabelValues(operation, status).Inc()
	return err
}
