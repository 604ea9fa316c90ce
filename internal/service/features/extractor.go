// Package features turns raw transcript text into a fixed-shape bag of
// numeric signals: keyword hit counts per category and severity tier,
// text statistics and emotional-intensity counters. Extraction is a
// pure function, recomputed per transcript and never persisted.
package features

import (
	"strings"
	"unicode"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/keywords"
)

// Bag is a mapping from named feature to numeric value.
type Bag map[string]float64

// Extract computes the feature bag for text. It is deterministic,
// case-insensitive and safe for empty input, which yields all zeros.
func Extract(text string) Bag {
	lower := strings.ToLower(text)
	bag := make(Bag, len(keywords.CategoryTables)+len(keywords.SeverityTables)+7)

	for _, table := range keywords.CategoryTables {
		bag[table.Category.String()+"_keywords"] = float64(CountHits(lower, table.Words))
	}
	for _, table := range keywords.SeverityTables {
		bag[table.Tier.String()+"_keywords"] = float64(CountHits(lower, table.Words))
	}

	bag["text_length"] = float64(len(text))
	bag["word_count"] = float64(len(strings.Fields(text)))
	bag["exclamation_count"] = float64(strings.Count(text, "!"))
	bag["question_count"] = float64(strings.Count(text, "?"))
	bag["caps_ratio"] = capsRatio(text)
	bag["urgent_word_count"] = float64(CountHits(lower, keywords.UrgentWords))
	bag["emotional_word_count"] = float64(CountHits(lower, keywords.EmotionalWords))

	return bag
}

// CountHits counts how many words from the table occur in the lowered
// text. Substring matching, one hit per table entry.
func CountHits(lowered string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lowered, w) {
			n++
		}
	}
	return n
}

func capsRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(text))
}
