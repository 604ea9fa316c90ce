// Package classify maps a transcript to one emergency category.
//
// The primary signal is case-insensitive keyword scoring against fixed
// per-category tables. A learned text model can be attached as a
// construction-time capability, but it only decides zero-count and tied
// cases: keyword evidence takes precedence whenever it is non-empty,
// which keeps every classification explainable by the matched table.
package classify

import (
	"strings"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/features"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/keywords"
)

// unknownReserve is the fixed probability mass redistributed to UNKNOWN
// whenever any keyword matched. Keyword classification is never fully
// certain.
const unknownReserve = 0.10

// TextModel is an optional learned classifier consulted for zero-count
// and tied cases. ok=false means the model abstains.
type TextModel interface {
	Predict(text string) (category models.EmergencyCategory, score float64, ok bool)
}

// Classifier resolves the emergency category for a transcript.
type Classifier struct {
	model TextModel
}

// New returns a rule-only classifier.
func New() *Classifier {
	return &Classifier{}
}

// NewWithModel returns a classifier augmented with a learned model.
// A nil model degrades to the rule-only path.
func NewWithModel(m TextModel) *Classifier {
	return &Classifier{model: m}
}

// Enhanced reports whether a learned model is attached.
func (c *Classifier) Enhanced() bool {
	return c.model != nil
}

// Classify returns the winning category and the confidence distribution
// over all categories. Ties between equal keyword counts resolve to the
// first-declared category; zero total signal resolves to UNKNOWN.
func (c *Classifier) Classify(text string) (models.EmergencyCategory, models.CategoryConfidence) {
	lowered := strings.ToLower(text)

	counts := make(map[models.EmergencyCategory]int, len(keywords.CategoryTables))
	total := 0
	for _, table := range keywords.CategoryTables {
		n := features.CountHits(lowered, table.Words)
		counts[table.Category] = n
		total += n
	}

	winner := c.resolve(text, counts, total)
	return winner, confidenceMap(counts, total)
}

// resolve picks the category from raw counts, consulting the learned
// model only where the keyword evidence is absent or ambiguous.
func (c *Classifier) resolve(text string, counts map[models.EmergencyCategory]int, total int) models.EmergencyCategory {
	if total == 0 {
		if c.model != nil {
			if cat, _, ok := c.model.Predict(text); ok {
				return cat
			}
		}
		return models.CategoryUnknown
	}

	max := 0
	var leaders []models.EmergencyCategory
	for _, table := range keywords.CategoryTables {
		n := counts[table.Category]
		switch {
		case n > max:
			max = n
			leaders = leaders[:0]
			leaders = append(leaders, table.Category)
		case n == max && n > 0:
			leaders = append(leaders, table.Category)
		}
	}

	if len(leaders) > 1 && c.model != nil {
		if cat, _, ok := c.model.Predict(text); ok {
			for _, l := range leaders {
				if l == cat {
					return cat
				}
			}
		}
	}
	// First-declared category wins the tie.
	return leaders[0]
}

// confidenceMap normalizes raw counts into a distribution over every
// category. With zero signal UNKNOWN takes 1.0; otherwise the named
// categories share 90% proportionally and UNKNOWN keeps a fixed 10%
// reserve.
func confidenceMap(counts map[models.EmergencyCategory]int, total int) models.CategoryConfidence {
	cc := make(models.CategoryConfidence, len(models.Categories))
	for _, cat := range models.Categories {
		cc[cat] = 0
	}
	if total == 0 {
		cc[models.CategoryUnknown] = 1.0
		return cc
	}
	for cat, n := range counts {
		cc[cat] = float64(n) / float64(total) * (1 - unknownReserve)
	}
	cc[models.CategoryUnknown] = unknownReserve
	return cc
}
