package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear relevant env vars
	envVars := []string{
		"SERVICE_PRINCIPAL", "HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT",
		"STT_PROVIDER", "STT_LANGUAGE_CODE", "STT_SAMPLE_RATE_HZ",
		"CALL_MAX_AUDIO_BYTES", "CALL_MAX_DURATION", "CALL_MAX_CHUNK_BYTES",
		"AUDIT_LOG_PATH", "RECORDINGS_DIR", "KNOWLEDGE_DB_PATH", "MODEL_PATH",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_PRINCIPAL",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg := Load()

	// Service defaults
	if cfg.Service.Principal != "svc-dispatch-triage" {
		t.Errorf("expected default principal 'svc-dispatch-triage', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "8000" {
		t.Errorf("expected default port '8000', got %s", cfg.Service.HTTPPort)
	}

	// STT defaults
	if cfg.STT.Provider != "mock" {
		t.Errorf("expected default STT provider 'mock', got %s", cfg.STT.Provider)
	}
	if cfg.STT.LanguageCode != "en" {
		t.Errorf("expected default language 'en', got %s", cfg.STT.LanguageCode)
	}
	if cfg.STT.SampleRateHz != 48000 {
		t.Errorf("expected default sample rate 48000, got %d", cfg.STT.SampleRateHz)
	}

	// Call limits defaults
	if cfg.CallLimits.MaxAudioBytes != 50*1024*1024 {
		t.Errorf("expected default max audio bytes 50MB, got %d", cfg.CallLimits.MaxAudioBytes)
	}
	if cfg.CallLimits.MaxDuration != 30*time.Minute {
		t.Errorf("expected default max duration 30m, got %v", cfg.CallLimits.MaxDuration)
	}
	if cfg.CallLimits.MaxChunkBytes != 1024*1024 {
		t.Errorf("expected default max chunk bytes 1MB, got %d", cfg.CallLimits.MaxChunkBytes)
	}

	// Storage defaults
	if cfg.Storage.AuditLogPath != "classification_logs.jsonl" {
		t.Errorf("expected default audit log path, got %s", cfg.Storage.AuditLogPath)
	}
	if cfg.Storage.RecordingsDir != "recordings" {
		t.Errorf("expected default recordings dir, got %s", cfg.Storage.RecordingsDir)
	}

	// Observability defaults
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("SERVICE_PRINCIPAL", "custom-principal")
	os.Setenv("HTTP_PORT", "9999")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("STT_PROVIDER", "google")
	os.Setenv("STT_LANGUAGE_CODE", "es")
	os.Setenv("STT_SAMPLE_RATE_HZ", "16000")
	os.Setenv("CALL_MAX_AUDIO_BYTES", "10485760")
	os.Setenv("CALL_MAX_DURATION", "10m")
	os.Setenv("KAFKA_BROKERS", "kafka-0:9092, kafka-1:9092")

	defer func() {
		os.Unsetenv("SERVICE_PRINCIPAL")
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("STT_PROVIDER")
		os.Unsetenv("STT_LANGUAGE_CODE")
		os.Unsetenv("STT_SAMPLE_RATE_HZ")
		os.Unsetenv("CALL_MAX_AUDIO_BYTES")
		os.Unsetenv("CALL_MAX_DURATION")
		os.Unsetenv("KAFKA_BROKERS")
	}()

	cfg := Load()

	if cfg.Service.Principal != "custom-principal" {
		t.Errorf("expected principal 'custom-principal', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "9999" {
		t.Errorf("expected port '9999', got %s", cfg.Service.HTTPPort)
	}
	if cfg.STT.Provider != "google" {
		t.Errorf("expected STT provider 'google', got %s", cfg.STT.Provider)
	}
	if cfg.STT.LanguageCode != "es" {
		t.Errorf("expected language 'es', got %s", cfg.STT.LanguageCode)
	}
	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected sample rate 16000, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.CallLimits.MaxAudioBytes != 10485760 {
		t.Errorf("expected max audio bytes 10485760, got %d", cfg.CallLimits.MaxAudioBytes)
	}
	if cfg.CallLimits.MaxDuration != 10*time.Minute {
		t.Errorf("expected max duration 10m, got %v", cfg.CallLimits.MaxDuration)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "kafka-0:9092" || cfg.Kafka.Brokers[1] != "kafka-1:9092" {
		t.Errorf("expected two trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_InvalidValues_FallbackToDefaults(t *testing.T) {
	os.Setenv("STT_SAMPLE_RATE_HZ", "not-a-number")
	os.Setenv("CALL_MAX_AUDIO_BYTES", "invalid")
	os.Setenv("CALL_MAX_DURATION", "invalid")
	os.Setenv("KAFKA_ENABLED", "invalid")

	defer func() {
		os.Unsetenv("STT_SAMPLE_RATE_HZ")
		os.Unsetenv("CALL_MAX_AUDIO_BYTES")
		os.Unsetenv("CALL_MAX_DURATION")
		os.Unsetenv("KAFKA_ENABLED")
	}()

	cfg := Load()

	if cfg.STT.SampleRateHz != 48000 {
		t.Errorf("expected default sample rate on invalid input, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.CallLimits.MaxAudioBytes != 50*1024*1024 {
		t.Errorf("expected default max audio bytes on invalid input, got %d", cfg.CallLimits.MaxAudioBytes)
	}
	if cfg.CallLimits.MaxDuration != 30*time.Minute {
		t.Errorf("expected default max duration on invalid input, got %v", cfg.CallLimits.MaxDuration)
	}
	if cfg.Kafka.Enabled != false {
		t.Errorf("expected Kafka disabled on invalid input, got %v", cfg.Kafka.Enabled)
	}
}

func TestLoad_KafkaPrincipal_FallsBackToServicePrincipal(t *testing.T) {
	os.Setenv("SERVICE_PRINCIPAL", "my-service")
	os.Unsetenv("KAFKA_PRINCIPAL")

	defer os.Unsetenv("SERVICE_PRINCIPAL")

	cfg := Load()

	if cfg.Kafka.Principal != "my-service" {
		t.Errorf("expected Kafka principal to fall back to service principal, got %s", cfg.Kafka.Principal)
	}
}

func TestEnvOrDefaultBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		expected bool
	}{
		{"true string", "true", false, true},
		{"false string", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"TRUE uppercase", "TRUE", false, true},
		{"invalid", "invalid", true, true},
		{"empty", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}
			defer os.Unsetenv(key)

			got := envOrDefaultBool(key, tt.def)
			if got != tt.expected {
				t.Errorf("envOrDefaultBool(%s, %v) = %v, want %v", tt.envValue, tt.def, got, tt.expected)
			}
		})
	}
}
