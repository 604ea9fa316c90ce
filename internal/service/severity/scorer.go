// Package severity maps a transcript to a severity tier via weighted
// keyword scoring. CRITICAL keyword hits count double and every
// urgency/intensity/distress indicator phrase found adds a flat bonus
// to both CRITICAL and HIGH, so emotional urgency amplifies perceived
// severity without being category-specific.
package severity

import (
	"strings"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/features"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/keywords"
)

const (
	criticalWeight = 2.0
	// indicatorBonus is added per indicator phrase occurrence, uncapped.
	// Repetitive text can push scores arbitrarily high; kept as designed.
	indicatorBonus = 0.5
)

// Scorer resolves the severity tier for a transcript.
type Scorer struct{}

// New returns a severity scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score returns the winning tier and the confidence distribution over
// all tiers. Ties resolve by tier precedence (CRITICAL, HIGH, MEDIUM,
// LOW); zero signal falls back to MEDIUM, which always carries
// operational meaning for dispatch.
func (s *Scorer) Score(text string) (models.SeverityTier, models.SeverityConfidence) {
	lowered := strings.ToLower(text)

	scores := make(map[models.SeverityTier]float64, len(keywords.SeverityTables))
	total := 0.0
	for _, table := range keywords.SeverityTables {
		weight := 1.0
		if table.Tier == models.SeverityCritical {
			weight = criticalWeight
		}
		v := float64(features.CountHits(lowered, table.Words)) * weight
		scores[table.Tier] = v
		total += v
	}

	bonus := indicatorBonus * float64(indicatorHits(lowered))
	if bonus > 0 {
		scores[models.SeverityCritical] += bonus
		scores[models.SeverityHigh] += bonus
		total += 2 * bonus
	}

	winner := models.SeverityMedium
	max := 0.0
	for _, tier := range models.SeverityTiers {
		if scores[tier] > max {
			max = scores[tier]
			winner = tier
		}
	}
	if max == 0 {
		winner = models.SeverityMedium
	}

	return winner, confidenceMap(scores, total)
}

// EmotionIntensity estimates the emotional intensity of the text in
// [0,1] from emotion keywords, exclamation marks and capitalization.
func (s *Scorer) EmotionIntensity(text string) float64 {
	lowered := strings.ToLower(text)

	score := 0.1 * float64(features.CountHits(lowered, keywords.EmotionKeywords))
	score += 0.2 * float64(strings.Count(text, "!"))

	if len(text) > 0 {
		upper := 0
		for _, r := range text {
			if r >= 'A' && r <= 'Z' {
				upper++
			}
		}
		score += 0.3 * float64(upper) / float64(len(text))
	}

	if score > 1 {
		score = 1
	}
	if score < 0.1 {
		score = 0.1
	}
	return score
}

func indicatorHits(lowered string) int {
	n := 0
	for _, set := range keywords.IndicatorSets {
		for _, phrase := range set {
			n += strings.Count(lowered, phrase)
		}
	}
	return n
}

// confidenceMap normalizes weighted scores over their sum. The zero-sum
// case allocates 0.8 to MEDIUM and 0.2 to LOW by convention.
func confidenceMap(scores map[models.SeverityTier]float64, total float64) models.SeverityConfidence {
	sc := make(models.SeverityConfidence, len(models.SeverityTiers))
	for _, tier := range models.SeverityTiers {
		sc[tier] = 0
	}
	if total == 0 {
		sc[models.SeverityMedium] = 0.8
		sc[models.SeverityLow] = 0.2
		return sc
	}
	for tier, v := range scores {
		sc[tier] = v / total
	}
	return sc
}
