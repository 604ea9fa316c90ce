package triage

import "time"

// CallLimits defines safety guardrails for a call session. These
// prevent unbounded resource usage by a single caller. A zero field
// disables that limit.
type CallLimits struct {
	MaxAudioBytes int64         // Max accumulated audio per call
	MaxDuration   time.Duration // Max call duration
	MaxChunkBytes int64         // Max size of a single audio chunk
}

// DefaultLimits returns sensible default limits.
func DefaultLimits() CallLimits {
	return CallLimits{
		MaxAudioBytes: 50 * 1024 * 1024, // ~9 minutes at 48kHz 16-bit mono
		MaxDuration:   30 * time.Minute,
		MaxChunkBytes: 1024 * 1024,
	}
}
