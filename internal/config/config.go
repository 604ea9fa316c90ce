// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig holds service identity and transport settings.
type ServiceConfig struct {
	Principal string
	HTTPPort  string
}

// STTConfig holds speech-to-text provider settings.
type STTConfig struct {
	Provider     string // mock, google
	LanguageCode string
	SampleRateHz int
}

// CallLimitsConfig bounds the resources a single call session may consume.
type CallLimitsConfig struct {
	MaxAudioBytes int64
	MaxDuration   time.Duration
	MaxChunkBytes int64
}

// StorageConfig holds paths for the on-disk collaborators.
type StorageConfig struct {
	AuditLogPath  string
	RecordingsDir string
	KnowledgeDSN  string
	ModelPath     string
}

// KafkaConfig holds event publishing settings.
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	TopicDecisions string
	TopicCalls     string
	Principal      string
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
}

// Configuration is the full service configuration.
type Configuration struct {
	Service       ServiceConfig
	STT           STTConfig
	CallLimits    CallLimitsConfig
	Storage       StorageConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-dispatch-triage")

	return &Configuration{
		Service: ServiceConfig{
			Principal: principal,
			HTTPPort:  envOrDefault("HTTP_PORT", "8000"),
		},
		STT: STTConfig{
			Provider:     envOrDefault("STT_PROVIDER", "mock"),
			LanguageCode: envOrDefault("STT_LANGUAGE_CODE", "en"),
			SampleRateHz: envOrDefaultInt("STT_SAMPLE_RATE_HZ", 48000),
		},
		CallLimits: CallLimitsConfig{
			MaxAudioBytes: envOrDefaultInt64("CALL_MAX_AUDIO_BYTES", 50*1024*1024),
			MaxDuration:   envOrDefaultDuration("CALL_MAX_DURATION", 30*time.Minute),
			MaxChunkBytes: envOrDefaultInt64("CALL_MAX_CHUNK_BYTES", 1024*1024),
		},
		Storage: StorageConfig{
			AuditLogPath:  envOrDefault("AUDIT_LOG_PATH", "classification_logs.jsonl"),
			RecordingsDir: envOrDefault("RECORDINGS_DIR", "recordings"),
			KnowledgeDSN:  envOrDefault("KNOWLEDGE_DB_PATH", "knowledge.db"),
			ModelPath:     envOrDefault("MODEL_PATH", ""),
		},
		Kafka: KafkaConfig{
			Enabled:        envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:        envOrDefaultList("KAFKA_BROKERS", nil),
			TopicDecisions: envOrDefault("KAFKA_TOPIC_DECISIONS", "dispatch.triage.decisions"),
			TopicCalls:     envOrDefault("KAFKA_TOPIC_CALLS", "dispatch.call.lifecycle"),
			Principal:      envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:  envOrDefault("LOG_LEVEL", "info"),
			LogFormat: envOrDefault("LOG_FORMAT", "json"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
