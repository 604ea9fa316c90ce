package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/api/ws"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/app"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/audit"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/config"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/events"
	httpapi "github.com/Akhils696/rapid100-ai-dispatch/internal/http"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/knowledge"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/logging"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/recording"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/classify"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/explain"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/location"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/severity"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt"
	googlestt "github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt/google"
	mockstt "github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt/mock"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/triage"
)

func main() {
	cfg := config.Load()
	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Application start failed")
	}
	defer application.Shutdown()

	// Kafka publisher with separate topics for decisions and call lifecycle
	publisher := events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicDecisions: cfg.Kafka.TopicDecisions,
		TopicCalls:     cfg.Kafka.TopicCalls,
		Principal:      cfg.Kafka.Principal,
	})
	defer publisher.Close()

	auditLog, err := audit.New(cfg.Storage.AuditLogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open audit log")
	}

	recorder, err := recording.NewSink(cfg.Storage.RecordingsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open recordings directory")
	}

	store, err := knowledge.NewSQLiteStore(cfg.Storage.KnowledgeDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open knowledge store")
	}
	defer store.Close()

	transcriber, provider := newTranscriber(cfg)
	defer transcriber.Close()

	classifier := classify.New()
	if cfg.Storage.ModelPath != "" {
		if model, err := classify.LoadLinearModel(cfg.Storage.ModelPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.Storage.ModelPath).Msg("Model unavailable, using rule-only classification")
		} else {
			classifier = classify.NewWithModel(model)
		}
	}

	pipeline := triage.NewPipeline(classifier, severity.New(), location.New(), explain.New(), store)

	deps := triage.Deps{
		Transcriber: transcriber,
		Provider:    provider,
		Pipeline:    pipeline,
		Recorder:    recorder,
		Audit:       auditLog,
		Store:       store,
		Publisher:   publisher,
		Audio: stt.AudioConfig{
			Language:       cfg.STT.LanguageCode,
			NoiseFiltering: true,
			SampleRateHz:   cfg.STT.SampleRateHz,
		},
		Limits: triage.CallLimits{
			MaxAudioBytes: cfg.CallLimits.MaxAudioBytes,
			MaxDuration:   cfg.CallLimits.MaxDuration,
			MaxChunkBytes: cfg.CallLimits.MaxChunkBytes,
		},
	}

	router := httpapi.NewRouter(application, &httpapi.Handlers{
		Pipeline: pipeline,
		Audit:    auditLog,
		Recorder: recorder,
		WS:       ws.NewHandler(deps),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Service.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Service.HTTPPort).Str("sttProvider", provider).Msg("Dispatch triage service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
}

// newTranscriber selects the speech-to-text provider from configuration,
// falling back to the mock on any failure.
func newTranscriber(cfg *config.Configuration) (stt.Transcriber, string) {
	sttLogger := logging.WithComponent("transcriber")
	if cfg.STT.Provider == "google" {
		t, err := googlestt.New(context.Background())
		if err != nil {
			sttLogger.Warn().Err(err).Msg("Google transcriber unavailable, falling back to mock")
			return mockstt.New(), "mock"
		}
		return t, "google"
	}
	sttLogger.Info().Str("provider", "mock").Msg("Using mock transcription")
	return mockstt.New(), "mock"
}
