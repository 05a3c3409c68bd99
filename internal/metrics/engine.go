// Package metrics defines the Prometheus collectors of the gateway and SDK.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "redisearch"

// Engine command metrics.
var (
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of RediSearch commands by outcome",
		},
		[]string{"command", "status"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "RediSearch command round-trip duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	ReindexDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reindex_documents_total",
			Help:      "Documents processed by reindex by outcome",
		},
		[]string{"index", "status"},
	)
)

// Command outcome label values.
const (
	StatusOK           = "ok"
	StatusEngineError  = "engine_error"
	StatusConnectivity = "connectivity"
	StatusInvalid      = "invalid"
)

var engineOnce sync.Once

// RegisterEngineMetrics registers command and reindex metrics with the default registerer.
func RegisterEngineMetrics() {
	engineOnce.Do(func() {
		prometheus.MustRegister(CommandsTotal, CommandDuration, ReindexDocumentsTotal)
	})
}

// ReindexRecorder counts reindexed documents.
type ReindexRecorder struct{}

// ReindexDocument records one document outcome.
func (ReindexRecorder) ReindexDocument(index string, ok bool) {
	status := StatusOK
	if !ok {
		status = "error"
	}
	ReindexDocumentsTotal.WithLabelValues(index, status).Inc()
}
