// Package http wires the REST and websocket surface of the service.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/api/ws"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/app"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/audit"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/recording"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/triage"
)

// auditTail is how many audit records the logs endpoint returns.
const auditTail = 50

// scenario is a canned call used by the simulation endpoint.
type scenario struct {
	Text         string
	ExpectedType string
}

var scenarios = map[string]scenario{
	"medical": {
		Text:         "Help! My wife is unconscious and not breathing. She collapsed suddenly. Address is 123 Main St, Downtown. Please send an ambulance immediately!",
		ExpectedType: "MEDICAL",
	},
	"fire": {
		Text:         "There's a fire at my house! Smoke is everywhere, flames coming from the kitchen. Address is 456 Oak Ave, Suburbia. Need firefighters now!",
		ExpectedType: "FIRE",
	},
	"crime": {
		Text:         "Someone is breaking into my house! I hear glass breaking and footsteps. Address is 789 Pine Rd, Residential Area. Gunshots fired. Police needed immediately!",
		ExpectedType: "CRIME",
	},
	"accident": {
		Text:         "Car accident on Highway 101 near Exit 15. Multiple cars involved, people injured. Blood everywhere. Need ambulances and police.",
		ExpectedType: "ACCIDENT",
	},
	"disaster": {
		Text:         "Tornado warning! Severe weather approaching downtown. Taking shelter in basement. Large debris flying. Need emergency management.",
		ExpectedType: "DISASTER",
	},
}

// Handlers holds the collaborators behind the REST surface.
type Handlers struct {
	Pipeline *triage.Pipeline
	Audit    *audit.Log
	Recorder *recording.Sink
	WS       *ws.Handler
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(application *app.Application, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health and metrics
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Duplex call channel
	r.Get("/ws/transcribe/{call_id}", h.WS.ServeCall)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/classify", h.classify)
		r.Get("/simulate-call/{scenario}", h.simulateCall)
		r.Get("/logs", h.logs)
		r.Get("/recordings", h.recordings)
	})

	r.Get("/recordings/{filename}", h.serveRecording)

	return r
}

// classify handles POST /api/classify: one pipeline run over a caller
// supplied text, no session involved.
func (h *Handlers) classify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Text is required"})
		return
	}

	d := h.Pipeline.Evaluate(r.Context(), "api-"+uuid.New().String(), req.Text, "en")
	if h.Audit != nil {
		if err := h.Audit.Append(d); err != nil {
			log.Error().Err(err).Msg("Audit append failed")
		}
	}
	writeJSON(w, http.StatusOK, d)
}

// simulateCall handles GET /api/simulate-call/{scenario}: runs the
// pipeline over a canned transcript and reports the expected category
// alongside the decision.
func (h *Handlers) simulateCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "scenario")
	sc, ok := scenarios[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Scenario not found"})
		return
	}

	d := h.Pipeline.Evaluate(r.Context(), "sim-"+name, sc.Text, "en")
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario":      name,
		"input_text":    sc.Text,
		"expected_type": sc.ExpectedType,
		"decision":      d,
	})
}

// logs handles GET /api/logs: the tail of the audit log, oldest first.
func (h *Handlers) logs(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.Audit.ReadLast(auditTail)
	if err != nil {
		log.Error().Err(err).Msg("Audit read failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read logs"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": entries, "count": len(entries)})
}

// recordings handles GET /api/recordings: flushed call recordings,
// newest first.
func (h *Handlers) recordings(w http.ResponseWriter, _ *http.Request) {
	list, err := h.Recorder.List()
	if err != nil {
		log.Error().Err(err).Msg("Recording list failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recordings"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recordings": list, "count": len(list)})
}

// serveRecording handles GET /recordings/{filename}.
func (h *Handlers) serveRecording(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, ok := h.Recorder.Path(filename)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recording not found"})
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
