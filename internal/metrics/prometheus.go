package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DocumentsExtracted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_documents_extracted_total",
			Help: "Files run through text extraction",
		},
		[]string{"kind", "outcome"},
	)

	ExtractDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landdoc_extract_duration_seconds",
			Help:    "Text extraction duration in seconds",
			Buckets: []float64{0.05, 0.25, 1, 2, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	Verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_verifications_total",
			Help: "Verification results by status",
		},
		[]string{"status"},
	)

	VerificationConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "landdoc_verification_confidence",
			Help:    "Confidence scores of verification results",
			Buckets: []float64{0, 10, 25, 40, 55, 70, 85, 100},
		},
	)

	Sections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_sections_total",
			Help: "Section analyses by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	GeneratorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_generator_calls_total",
			Help: "Text-generation calls by outcome",
		},
		[]string{"model", "outcome"},
	)

	ChatResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_chat_responses_total",
			Help: "Chat replies by source",
		},
		[]string{"source"},
	)

	HistoryAppends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_history_appends_total",
			Help: "Records appended to history",
		},
		[]string{"kind", "outcome"},
	)

	QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "landdoc_queue_depth",
			Help: "Jobs waiting in the processing queue",
		},
	)

	JobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landdoc_jobs_processed_total",
			Help: "Queued jobs by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

var once sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(DocumentsExtracted)
		prometheus.MustRegister(ExtractDuration)
		prometheus.MustRegister(Verifications)
		prometheus.MustRegister(VerificationConfidence)
		prometheus.MustRegister(Sections)
		prometheus.MustRegister(GeneratorCalls)
		prometheus.MustRegister(ChatResponses)
		prometheus.MustRegister(HistoryAppends)
		prometheus.MustRegister(QueueDepth)
		prometheus.MustRegister(JobsProcessed)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
