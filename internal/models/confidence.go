package models

import (
	"fmt"
	"math"
)

// sumTolerance is the allowed drift when checking that a confidence
// distribution sums to 1.
const sumTolerance = 1e-6

// CategoryConfidence is a normalized probability distribution over all
// emergency categories.
type CategoryConfidence map[EmergencyCategory]float64

// Validate checks that every category is present, every share is in
// [0,1] and the distribution sums to 1 within tolerance.
func (cc CategoryConfidence) Validate() error {
	var sum float64
	for _, c := range Categories {
		v, ok := cc[c]
		if !ok {
			return fmt.Errorf("category confidence missing entry for %s", c)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("category confidence for %s out of range: %f", c, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > sumTolerance {
		return fmt.Errorf("category confidence sums to %f, want 1", sum)
	}
	return nil
}

// Share returns the confidence for c, zero when absent.
func (cc CategoryConfidence) Share(c EmergencyCategory) float64 {
	return cc[c]
}

// SeverityConfidence is a normalized probability distribution over all
// severity tiers.
type SeverityConfidence map[SeverityTier]float64

// Validate checks that every tier is present, every share is in [0,1]
// and the distribution sums to 1 within tolerance.
func (sc SeverityConfidence) Validate() error {
	var sum float64
	for _, s := range SeverityTiers {
		v, ok := sc[s]
		if !ok {
			return fmt.Errorf("severity confidence missing entry for %s", s)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("severity confidence for %s out of range: %f", s, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > sumTolerance {
		return fmt.Errorf("severity confidence sums to %f, want 1", sum)
	}
	return nil
}

// Share returns the confidence for s, zero when absent.
func (sc SeverityConfidence) Share(s SeverityTier) float64 {
	return sc[s]
}
