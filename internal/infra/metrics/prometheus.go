package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veriscan_analyses_total",
		Help: "Total number of completed analyses, by media type and verdict",
	}, []string{"media_type", "verdict"})

	AnalysisStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "veriscan_analysis_stage_duration_seconds",
		Help:    "Duration of each analysis pipeline stage",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
	}, []string{"stage"})

	FramesClassifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "veriscan_frames_classified_total",
		Help: "Total number of frames sent to the classifier",
	})

	TranslationCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veriscan_translation_cache_lookups_total",
		Help: "Translation cache lookups, by result",
	}, []string{"result"})

	ActiveAnalyses = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "veriscan_active_analyses",
		Help: "Number of analyses currently in flight",
	})
)
