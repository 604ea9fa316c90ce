// Package ws exposes the duplex call channel over a websocket.
package ws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/logging"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/metrics"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/triage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Calls arrive from arbitrary dispatch consoles.
		return true
	},
}

// inboundMessage is the JSON envelope for text frames on the call
// channel. Binary frames carry raw audio and skip the envelope.
type inboundMessage struct {
	Type           string  `json:"type"`
	Language       string  `json:"language,omitempty"`
	NoiseFiltering *bool   `json:"noise_filtering,omitempty"`
	SampleRate     int     `json:"sample_rate,omitempty"`
	Data           string  `json:"data,omitempty"`
	AudioLevel     float64 `json:"audio_level,omitempty"`
	Timestamp      string  `json:"timestamp,omitempty"`
}

// Handler upgrades call connections and drives one session per
// connection.
type Handler struct {
	deps    triage.Deps
	metrics *metrics.Metrics
}

// NewHandler creates a websocket handler over the shared session
// collaborators.
func NewHandler(deps triage.Deps) *Handler {
	return &Handler{
		deps:    deps,
		metrics: metrics.DefaultMetrics,
	}
}

// ServeCall handles GET /ws/transcribe/{call_id}. It reads frames in
// arrival order, feeds audio through the session pipeline, and writes
// one decision record per non-empty transcript. The connection closing,
// for any reason, finalizes the session exactly once.
func (h *Handler) ServeCall(w http.ResponseWriter, r *http.Request) {
	callID := chi.URLParam(r, "call_id")
	if callID == "" {
		callID = uuid.New().String()
	}
	logger := logging.WithCall(callID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	session := triage.NewSession(callID, h.deps)
	ctx := r.Context()

	fatal := false
	defer func() {
		// Finalize with a background context: the request context is
		// already canceled once the client is gone.
		session.Finalize(context.Background(), fatal)
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("Websocket read error")
			}
			return
		}

		var ok bool
		switch msgType {
		case websocket.BinaryMessage:
			ok = h.processAudio(ctx, conn, session, payload, logger)
		case websocket.TextMessage:
			ok = h.processText(ctx, conn, session, payload, logger)
		default:
			// Ping/pong handled by the library. Ignore the rest.
			ok = true
		}
		if !ok {
			fatal = true
			return
		}
	}
}

// processText parses a JSON envelope and dispatches it. Malformed
// messages are logged and ignored; the session stays open. Returns
// false only on a fatal pipeline error.
func (h *Handler) processText(ctx context.Context, conn *websocket.Conn, session *triage.Session, payload []byte, logger zerolog.Logger) bool {
	var msg inboundMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn().Err(err).Msg("Ignoring malformed message")
		h.metrics.RecordMalformed("bad_json")
		return true
	}

	switch msg.Type {
	case "config":
		cfg := stt.AudioConfig{
			Language:     msg.Language,
			SampleRateHz: msg.SampleRate,
		}
		if msg.NoiseFiltering != nil {
			cfg.NoiseFiltering = *msg.NoiseFiltering
		} else {
			cfg.NoiseFiltering = session.Config().NoiseFiltering
		}
		if err := session.Configure(cfg); err != nil {
			logger.Warn().Err(err).Msg("Configuration rejected")
			h.metrics.RecordMalformed("config_rejected")
		}
		return true

	case "audio_chunk":
		audio, err := base64.StdEncoding.DecodeString(msg.Data)
		if err != nil {
			logger.Warn().Err(err).Msg("Ignoring chunk with bad base64 payload")
			h.metrics.RecordMalformed("bad_base64")
			return true
		}
		return h.processAudio(ctx, conn, session, audio, logger)

	default:
		logger.Warn().Str("type", msg.Type).Msg("Ignoring message of unknown type")
		h.metrics.RecordMalformed("unknown_type")
		return true
	}
}

// processAudio runs one chunk through the session and transmits the
// decision, if any. Returns false on a fatal error.
func (h *Handler) processAudio(ctx context.Context, conn *websocket.Conn, session *triage.Session, audio []byte, logger zerolog.Logger) bool {
	decision, err := session.ProcessChunk(ctx, audio)
	if err != nil {
		logger.Error().Err(err).Msg("Chunk processing failed, closing session")
		return false
	}
	if decision == nil {
		// Silence.
		return true
	}

	if err := conn.WriteJSON(decision); err != nil {
		logger.Warn().Err(err).Msg("Failed to transmit decision")
		return false
	}
	return true
}
