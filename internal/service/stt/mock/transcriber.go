// Package mock provides a canned transcriber for environments without a
// real speech engine. It cycles through scripted utterances, one per
// audio chunk, with periodic silence to mimic pauses between sentences.
package mock

import (
	"context"
	"sync"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt"
)

// DefaultScript provides sample emergency utterances for simulation.
var DefaultScript = []string{
	"Help! My wife is unconscious and not breathing.",
	"She collapsed suddenly, please hurry.",
	"Address is 123 Main St, Downtown.",
	"",
	"Please send an ambulance immediately!",
}

// Transcriber implements stt.Transcriber with scripted responses.
type Transcriber struct {
	mu     sync.Mutex
	script []string
	next   int
	closed bool
}

// New creates a mock transcriber cycling through DefaultScript.
func New() *Transcriber {
	return NewScripted(DefaultScript)
}

// NewScripted creates a mock transcriber with a custom script. An empty
// script always transcribes silence.
func NewScripted(script []string) *Transcriber {
	return &Transcriber{script: script}
}

// Transcribe returns the next scripted line regardless of the audio
// content. Empty lines model silence.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, cfg stt.AudioConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || len(t.script) == 0 || len(audio) == 0 {
		return "", nil
	}
	line := t.script[t.next%len(t.script)]
	t.next++
	return line, nil
}

// Close ends the mock session.
func (t *Transcriber) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
