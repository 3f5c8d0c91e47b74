package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes analysis counters and latency over Prometheus.
type Recorder struct {
	analyses *prometheus.CounterVec
	vetoes   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder
func New() *Recorder {
	return &Recorder{
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zikalyze_analyses_total",
				Help: "Total number of completed analyses",
			},
			[]string{"symbol", "bias"},
		),
		vetoes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zikalyze_vetoes_total",
				Help: "Total number of analyses vetoed by the consistency gate",
			},
			[]string{"source"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zikalyze_analysis_duration_seconds",
				Help:    "Duration of analysis pipeline runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"symbol"},
		),
	}
}

// RecordAnalysis records a completed analysis
func (r *Recorder) RecordAnalysis(symbol, bias string) {
	r.analyses.WithLabelValues(symbol, bias).Inc()
}

// RecordVeto records a veto by its source ("safety_filter", "tri_modal")
func (r *Recorder) RecordVeto(source string) {
	r.vetoes.WithLabelValues(source).Inc()
}

// RecordLatency records pipeline latency in seconds
func (r *Recorder) RecordLatency(symbol string, seconds float64) {
	r.latency.WithLabelValues(symbol).Observe(seconds)
}
