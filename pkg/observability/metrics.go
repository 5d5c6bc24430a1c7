package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assistant pipeline metrics. Outcome labels are small closed sets so
// cardinality stays bounded.
var (
	ExtractionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_extraction_total",
		Help: "JSON payload extraction attempts by outcome (found, not_found).",
	}, []string{"outcome"})

	InstructionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_instructions_total",
		Help: "Mutation instructions by outcome (applied, skipped, failed).",
	}, []string{"outcome"})

	IntentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_intent_total",
		Help: "Classified intents by type.",
	}, []string{"intent"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assistant_llm_request_duration_seconds",
		Help:    "Latency of generator calls by purpose (descriptors, summary).",
		Buckets: prometheus.DefBuckets,
	}, []string{"purpose"})
)
