package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// predictionsTotal counts predictions by outcome ("hit" or "empty")
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mortality_predictions_total",
		Help: "Total predictions by outcome",
	}, []string{"result"})

	predictDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mortality_predict_duration_seconds",
		Help:    "Time to filter and rank one segment",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~80ms
	})

	datasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mortality_dataset_records",
		Help: "Records in the most recently loaded dataset",
	})
)
