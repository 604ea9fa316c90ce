package severity

import (
	"strings"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/features"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/keywords"
)

// NoiseLevel describes the estimated background noise of a call,
// inferred from transcript texture rather than the audio signal.
type NoiseLevel string

const (
	NoiseLow      NoiseLevel = "Low"
	NoiseMedium   NoiseLevel = "Medium"
	NoiseHigh     NoiseLevel = "High"
	NoiseVeryHigh NoiseLevel = "Very High"
)

// Confidence maps the noise level onto the [0,1] noise_confidence scale
// of the decision record. Quieter calls transcribe more reliably.
func (n NoiseLevel) Confidence() float64 {
	switch n {
	case NoiseLow:
		return 0.9
	case NoiseMedium:
		return 0.7
	case NoiseHigh:
		return 0.4
	case NoiseVeryHigh:
		return 0.2
	default:
		return 0.5
	}
}

// BackgroundNoise estimates the background noise level of the call.
func (s *Scorer) BackgroundNoise(text string) NoiseLevel {
	lowered := strings.ToLower(text)

	high := features.CountHits(lowered, keywords.HighNoiseIndicators)
	medium := features.CountHits(lowered, keywords.MediumNoiseIndicators)

	switch {
	case high >= 2:
		return NoiseVeryHigh
	case high >= 1:
		return NoiseHigh
	case medium >= 1:
		return NoiseMedium
	default:
		return NoiseLow
	}
}

// unclearIndicators mark hesitant or garbled speech in a transcript.
var unclearIndicators = []string{"...", "um", "uh", "hmm", "not sure", "maybe", "possibly"}

// VoiceClarity estimates whether the caller's speech came through
// clearly. Very short transcripts and hesitation-heavy ones read as
// unclear.
func (s *Scorer) VoiceClarity(text string) string {
	if len(strings.TrimSpace(text)) < 10 {
		return "Unclear"
	}
	if features.CountHits(strings.ToLower(text), unclearIndicators) >= 3 {
		return "Unclear"
	}
	return "Clear"
}
