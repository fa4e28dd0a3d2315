package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline and view metrics. Registered on the default registry; exposed
// by cmd/web under /metrics.
var (
	RowsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soclens",
		Name:      "rows_loaded_total",
		Help:      "Rows loaded into a storage table, by table.",
	}, []string{"table"})

	DownloadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soclens",
		Name:      "download_bytes_total",
		Help:      "Bytes downloaded from upstream sources, by dataset.",
	}, []string{"dataset"})

	ViewEvalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soclens",
		Name:      "view_eval_duration_seconds",
		Help:      "Wall time of a view evaluation, by view.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"view"})

	StepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soclens",
		Name:      "pipeline_step_duration_seconds",
		Help:      "Wall time of a pipeline step, by step.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"step"})
)
