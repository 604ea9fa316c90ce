// Package stt defines the interface for speech-to-text engines.
package stt

import "context"

// AudioConfig carries the per-call transcription settings a caller can
// adjust over the duplex channel.
type AudioConfig struct {
	Language       string
	NoiseFiltering bool
	SampleRateHz   int
}

// DefaultAudioConfig is applied when a call starts streaming before any
// configuration message arrives.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Language:       "en",
		NoiseFiltering: true,
		SampleRateHz:   48000,
	}
}

// Transcriber converts an audio chunk into text. An empty result means
// silence or unintelligible audio and is not an error.
type Transcriber interface {
	// Transcribe processes one audio chunk. It must not block
	// indefinitely; implementations honor ctx cancellation.
	Transcribe(ctx context.Context, audio []byte, cfg AudioConfig) (string, error)

	// Close releases the engine's resources.
	Close() error
}
