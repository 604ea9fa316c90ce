// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rapid100_dispatch"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Call session metrics
	CallsTotal   prometheus.Counter
	CallsActive  prometheus.Gauge
	CallsFailed  prometheus.Counter
	CallDuration prometheus.Histogram

	// Pipeline metrics
	DecisionsTotal   *prometheus.CounterVec
	PipelineLatency  prometheus.Histogram
	EmptyTranscripts prometheus.Counter

	// Audio metrics
	AudioBytesReceived prometheus.Counter
	ChunksReceived     prometheus.Counter

	// Transcription metrics
	TranscriptionLatency *prometheus.HistogramVec
	TranscriptionErrors  *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// Collaborator metrics
	KnowledgeInserts      prometheus.Counter
	KnowledgeInsertErrors prometheus.Counter
	KnowledgeQueryErrors  prometheus.Counter
	RecordingFlushes      prometheus.Counter
	RecordingFlushErrors  prometheus.Counter
	AuditAppendErrors     prometheus.Counter

	// Transport metrics
	MalformedMessages *prometheus.CounterVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		CallsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Total number of call sessions opened",
		}),
		CallsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "calls_active",
			Help:      "Number of currently active call sessions",
		}),
		CallsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_failed_total",
			Help:      "Total number of call sessions closed by a fatal error",
		}),
		CallDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Duration of call sessions in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),

		DecisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Total number of triage decisions emitted",
		}, []string{"category", "severity"}),
		PipelineLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_latency_seconds",
			Help:      "Latency of one full triage pipeline run over a transcript",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		EmptyTranscripts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_transcripts_total",
			Help:      "Total number of audio chunks transcribed to silence",
		}),

		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total audio bytes received",
		}),
		ChunksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_chunks_received_total",
			Help:      "Total audio chunks received",
		}),

		TranscriptionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_latency_seconds",
			Help:      "Speech-to-text latency per chunk in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"provider"}),
		TranscriptionErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_errors_total",
			Help:      "Total number of transcription errors",
		}, []string{"provider"}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		KnowledgeInserts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knowledge_inserts_total",
			Help:      "Total number of scenarios contributed to the knowledge store",
		}),
		KnowledgeInsertErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knowledge_insert_errors_total",
			Help:      "Total number of failed knowledge store inserts",
		}),
		KnowledgeQueryErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knowledge_query_errors_total",
			Help:      "Total number of failed knowledge store queries",
		}),
		RecordingFlushes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recording_flushes_total",
			Help:      "Total number of call recordings flushed to disk",
		}),
		RecordingFlushErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recording_flush_errors_total",
			Help:      "Total number of failed recording flushes",
		}),
		AuditAppendErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_append_errors_total",
			Help:      "Total number of failed audit log appends",
		}),

		MalformedMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_messages_total",
			Help:      "Total number of ignored malformed inbound messages",
		}, []string{"reason"}),
	}
}

// RecordCallStart records a new call session opening.
func (m *Metrics) RecordCallStart() {
	m.CallsTotal.Inc()
	m.CallsActive.Inc()
}

// RecordCallEnd records a call session closing.
func (m *Metrics) RecordCallEnd(fatal bool, durationSeconds float64) {
	m.CallsActive.Dec()
	m.CallDuration.Observe(durationSeconds)
	if fatal {
		m.CallsFailed.Inc()
	}
}

// RecordDecision records one emitted triage decision.
func (m *Metrics) RecordDecision(category, severity string, latencySeconds float64) {
	m.DecisionsTotal.WithLabelValues(category, severity).Inc()
	m.PipelineLatency.Observe(latencySeconds)
}

// RecordChunk records one received audio chunk.
func (m *Metrics) RecordChunk(bytes int) {
	m.ChunksReceived.Inc()
	m.AudioBytesReceived.Add(float64(bytes))
}

// RecordTranscription records a transcription attempt.
func (m *Metrics) RecordTranscription(provider string, err error, latencySeconds float64) {
	m.TranscriptionLatency.WithLabelValues(provider).Observe(latencySeconds)
	if err != nil {
		m.TranscriptionErrors.WithLabelValues(provider).Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordMalformed records an ignored malformed inbound message.
func (m *Metrics) RecordMalformed(reason string) {
	m.MalformedMessages.WithLabelValues(reason).Inc()
}
