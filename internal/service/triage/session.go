package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/audit"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/events"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/knowledge"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/logging"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/metrics"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/recording"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/severity"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt"
)

// Deps bundles the collaborators shared by every call session.
// Audio seeds the initial audio configuration for each session; the
// zero value falls back to stt.DefaultAudioConfig. Limits bounds the
// resources a session may consume; the zero value falls back to
// DefaultLimits.
type Deps struct {
	Transcriber stt.Transcriber
	Provider    string
	Pipeline    *Pipeline
	Recorder    *recording.Sink
	Audit       *audit.Log
	Store       knowledge.Store
	Publisher   *events.Publisher
	Audio       stt.AudioConfig
	Limits      CallLimits
}

// Session owns the state of one active call: its lifecycle, the
// effective audio configuration, the most recent decision, and the
// collaborators it flushes to on close. A session is driven by a single
// goroutine; chunks are processed strictly in arrival order.
type Session struct {
	lifecycle *Lifecycle
	cfg       stt.AudioConfig
	deps      Deps
	limits    CallLimits
	createdAt time.Time
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	audioBytes   int64
	lastDecision *models.Decision
	lastNoise    severity.NoiseLevel
}

// NewSession opens a call session in OPEN state with the configured
// initial audio settings and limits.
func NewSession(callID string, deps Deps) *Session {
	cfg := deps.Audio
	if cfg == (stt.AudioConfig{}) {
		cfg = stt.DefaultAudioConfig()
	}
	limits := deps.Limits
	if limits == (CallLimits{}) {
		limits = DefaultLimits()
	}

	s := &Session{
		lifecycle: NewLifecycle(callID),
		cfg:       cfg,
		deps:      deps,
		limits:    limits,
		createdAt: time.Now().UTC(),
		logger:    logging.WithCall(callID),
		metrics:   metrics.DefaultMetrics,
	}
	s.metrics.RecordCallStart()
	s.logger.Info().Msg("Call session opened")

	if deps.Publisher != nil {
		if err := deps.Publisher.PublishCallEvent(context.Background(), callID, callEvent{
			EventType: "call.lifecycle.opened",
			CallID:    callID,
			Timestamp: s.createdAt,
		}); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to publish call opened event")
		}
	}
	return s
}

// CallID returns the session's call ID.
func (s *Session) CallID() string {
	return s.lifecycle.CallID()
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.lifecycle.State()
}

// Config returns the session's effective audio configuration.
func (s *Session) Config() stt.AudioConfig {
	return s.cfg
}

// Configure applies a configuration message. Re-entrant: later messages
// update the effective configuration without a state change.
func (s *Session) Configure(cfg stt.AudioConfig) error {
	if err := s.lifecycle.AcceptConfig(); err != nil {
		return err
	}
	if cfg.Language != "" {
		s.cfg.Language = cfg.Language
	}
	if cfg.SampleRateHz > 0 {
		s.cfg.SampleRateHz = cfg.SampleRateHz
	}
	s.cfg.NoiseFiltering = cfg.NoiseFiltering

	s.logger.Debug().
		Str("language", s.cfg.Language).
		Bool("noiseFiltering", s.cfg.NoiseFiltering).
		Int("sampleRateHz", s.cfg.SampleRateHz).
		Msg("Session configured")
	return nil
}

// ProcessChunk runs one audio chunk through transcription and, when the
// transcript is non-empty, the full pipeline. A nil decision with a nil
// error means silence, which is expected. A non-nil error is fatal for
// the session and the caller must finalize it.
func (s *Session) ProcessChunk(ctx context.Context, audio []byte) (*models.Decision, error) {
	if err := s.lifecycle.AcceptAudio(); err != nil {
		return nil, err
	}

	callID := s.lifecycle.CallID()

	if s.limits.MaxChunkBytes > 0 && int64(len(audio)) > s.limits.MaxChunkBytes {
		return nil, fmt.Errorf("call limit exceeded: chunk of %d bytes over max %d", len(audio), s.limits.MaxChunkBytes)
	}
	s.audioBytes += int64(len(audio))
	if s.limits.MaxAudioBytes > 0 && s.audioBytes > s.limits.MaxAudioBytes {
		return nil, fmt.Errorf("call limit exceeded: %d audio bytes over max %d", s.audioBytes, s.limits.MaxAudioBytes)
	}
	if s.limits.MaxDuration > 0 && time.Since(s.createdAt) > s.limits.MaxDuration {
		return nil, fmt.Errorf("call limit exceeded: duration %v over max %v", time.Since(s.createdAt), s.limits.MaxDuration)
	}

	s.metrics.RecordChunk(len(audio))

	if s.deps.Recorder != nil {
		s.deps.Recorder.Append(callID, audio, s.cfg.SampleRateHz)
	}

	start := time.Now()
	text, err := s.deps.Transcriber.Transcribe(ctx, audio, s.cfg)
	s.metrics.RecordTranscription(s.deps.Provider, err, time.Since(start).Seconds())
	if err != nil {
		sttLogger := logging.WithTranscriber(callID, s.deps.Provider)
		sttLogger.Error().Err(err).Msg("Transcription failed")
		return nil, fmt.Errorf("transcribe chunk: %w", err)
	}

	if text == "" {
		// Silence. Expected, not an error.
		s.metrics.EmptyTranscripts.Inc()
		return nil, nil
	}

	d := s.deps.Pipeline.Evaluate(ctx, callID, text, s.cfg.Language)
	s.lastDecision = d
	s.lastNoise = s.deps.Pipeline.Noise(text)

	if s.deps.Audit != nil {
		if err := s.deps.Audit.Append(d); err != nil {
			s.logger.Error().Err(err).Msg("Audit append failed")
			s.metrics.AuditAppendErrors.Inc()
		}
	}

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishDecision(ctx, callID, d); err != nil {
			s.logger.Warn().Err(err).Str("decisionId", d.ID).Msg("Failed to publish decision")
		}
	}

	decisionLogger := logging.WithDecision(callID, d.ID)
	decisionLogger.Info().
		Str("category", d.EmergencyType.String()).
		Str("severity", d.Severity.String()).
		Str("department", d.Routing.Department).
		Msg("Decision emitted")

	return d, nil
}

// LastDecision returns the most recent decision, nil before the first
// non-empty transcript.
func (s *Session) LastDecision() *models.Decision {
	return s.lastDecision
}

// Finalize flushes the session's recording and contributes its last
// scenario to the knowledge store, then closes the session. The two
// flushes are independently best-effort. Exactly one caller runs the
// flush work; later calls are no-ops.
func (s *Session) Finalize(ctx context.Context, fatal bool) {
	if !s.lifecycle.BeginClose() {
		return
	}
	callID := s.lifecycle.CallID()

	if s.deps.Recorder != nil {
		path, ok, err := s.deps.Recorder.Flush(callID)
		switch {
		case err != nil:
			s.logger.Error().Err(err).Msg("Recording flush failed")
			s.metrics.RecordingFlushErrors.Inc()
		case ok:
			s.logger.Info().Str("path", path).Msg("Recording flushed")
			s.metrics.RecordingFlushes.Inc()
		}
	}

	if s.deps.Store != nil && s.lastDecision != nil {
		sc := knowledge.Scenario{
			CallID:           callID,
			Transcript:       s.lastDecision.Transcript,
			Category:         s.lastDecision.EmergencyType,
			Severity:         s.lastDecision.Severity,
			Location:         s.lastDecision.Location,
			NoiseLevel:       string(s.lastNoise),
			EmotionIntensity: s.lastDecision.EmotionMeter,
		}
		if err := s.deps.Store.InsertScenario(ctx, sc); err != nil {
			s.logger.Error().Err(err).Msg("Knowledge store insert failed")
			s.metrics.KnowledgeInsertErrors.Inc()
		} else {
			s.metrics.KnowledgeInserts.Inc()
		}
	}

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishCallEvent(ctx, callID, callEvent{
			EventType: "call.lifecycle.closed",
			CallID:    callID,
			Fatal:     fatal,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to publish call closed event")
		}
	}

	s.metrics.RecordCallEnd(fatal, time.Since(s.createdAt).Seconds())
	s.lifecycle.FinishClose()
	s.logger.Info().Bool("fatal", fatal).Msg("Call session closed")
}

// callEvent is the payload published on the call lifecycle topic.
type callEvent struct {
	EventType string    `json:"eventType"`
	CallID    string    `json:"call_id"`
	Fatal     bool      `json:"fatal,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
