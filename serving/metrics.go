package serving

import (
	"github.com/prometheus/client_golang/prometheus"
)

type engineMetrics struct {
	predictions   *prometheus.CounterVec
	errors        prometheus.Counter
	batchDuration prometheus.Histogram
}

func newEngineMetrics() *engineMetrics {
	return &engineMetrics{
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forest_predictions_total",
				Help: "Total number of rows predicted",
			}, []string{"task"},
		),
		errors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "forest_prediction_errors_total",
				Help: "Total number of failed batch predictions",
			},
		),
		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "forest_batch_duration_seconds",
				Help:    "Duration of batch predictions in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
		),
	}
}

func (m *engineMetrics) register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.predictions, m.errors, m.batchDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
