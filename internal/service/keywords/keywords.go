// Package keywords holds the fixed keyword tables driving the rule-based
// triage stages. All matching against these tables is case-insensitive
// substring matching, not tokenized.
package keywords

import "github.com/Akhils696/rapid100-ai-dispatch/internal/models"

// categoryTable pairs a category with its trigger keywords. Declaration
// order matters: the type classifier resolves score ties in favor of the
// first-declared category.
type categoryTable struct {
	Category models.EmergencyCategory
	Words    []string
}

// CategoryTables lists the keyword table per category in tie-break
// order. UNKNOWN carries no table; it is the zero-signal fallback.
var CategoryTables = []categoryTable{
	{models.CategoryMedical, []string{
		"unconscious", "breathing", "bleeding", "heart attack", "stroke", "pain",
		"injury", "ambulance", "sick", "ill", "medicine", "doctor", "hospital",
		"medication", "prescription", "symptom", "fever", "broken bone", "burn",
		"choke", "overdose", "seizure", "faint",
	}},
	{models.CategoryFire, []string{
		"fire", "smoke", "burning", "flames", "burn", "explode", "gas leak",
		"explosion", "blaze", "inferno", "combustion", "ignite", "torch",
		"smoke detector", "house fire", "kitchen fire",
	}},
	{models.CategoryCrime, []string{
		"gun", "shot", "robbery", "steal", "break in", "burglary", "assault",
		"murder", "rape", "kidnap", "threat", "dangerous", "criminal", "police",
		"arrest", "homicide", "weapon", "stab", "fight", "violence",
	}},
	{models.CategoryAccident, []string{
		"accident", "crash", "collision", "car", "truck", "vehicle", "hit",
		"injured", "wreck", "fender bender", "rollover", "pedestrian", "bike",
		"motorcycle", "pileup", "multi-car",
	}},
	{models.CategoryDisaster, []string{
		"tornado", "hurricane", "earthquake", "flood", "tsunami", "avalanche",
		"landslide", "wildfire", "storm", "emergency", "evacuation", "shelter",
		"weather", "severe", "disaster", "catastrophe", "natural disaster",
	}},
}

// severityTable pairs a severity tier with its trigger keywords, in
// precedence order (CRITICAL first). The scorer resolves ties toward
// the earlier tier.
type severityTable struct {
	Tier  models.SeverityTier
	Words []string
}

// SeverityTables lists the keyword table per severity tier. CRITICAL
// hits are weighted double by the scorer.
var SeverityTables = []severityTable{
	{models.SeverityCritical, []string{
		"unconscious", "not breathing", "heart attack", "stroke", "bleeding heavily",
		"severe bleeding", "cardiac arrest", "choking", "drowning", "electrocution",
		"severe burn", "multiple injuries", "life-threatening", "critical condition",
		"immediate danger", "active shooter", "explosion imminent", "mass casualty",
	}},
	{models.SeverityHigh, []string{
		"injured", "pain", "broken bone", "burn", "accident", "crash", "fire",
		"smoke", "gunshot", "stabbed", "assault", "robbery", "dangerous",
		"urgent", "emergency", "serious", "major", "significant",
	}},
	{models.SeverityMedium, []string{
		"sick", "ill", "fever", "minor injury", "small fire", "contained",
		"property damage", "disturbance", "noise complaint", "lost", "stranded",
		"locked out", "medical concern", "first aid needed", "property crime",
	}},
	{models.SeverityLow, []string{
		"inquiry", "information", "non-urgent", "routine", "follow-up",
		"administrative", "scheduled", "appointment", "general question",
	}},
}

// Indicator phrase sets. Each occurrence of any phrase adds a flat
// bonus to both CRITICAL and HIGH severity scores: emotional urgency
// amplifies perceived severity without being category-specific.
var (
	UrgencyIndicators   = []string{"immediately", "now", "right away", "hurry", "quickly", "fast"}
	IntensityIndicators = []string{"very", "extremely", "terribly", "incredibly", "highly"}
	DistressIndicators  = []string{"help", "please", "oh god", "oh no", "scared", "afraid"}
)

// IndicatorSets groups the three indicator phrase sets.
var IndicatorSets = [][]string{UrgencyIndicators, IntensityIndicators, DistressIndicators}

// Word lists feeding the feature extractor and the emotion meter.
var (
	UrgentWords = []string{"help", "emergency", "urgent", "immediately", "now", "quickly", "please"}

	EmotionalWords = []string{"scared", "afraid", "hurt", "pain", "bleeding", "unconscious", "oh god", "god"}

	// EmotionKeywords is the wider list scored by the emotion meter.
	EmotionKeywords = []string{
		"help", "emergency", "urgent", "immediately", "now", "quickly", "please",
		"scared", "afraid", "hurt", "pain", "bleeding", "unconscious", "oh god", "god",
		"choking", "can't breathe", "dying", "die", "worst", "terrible", "horrible",
	}
)

// Noise level indicator lists used to estimate background noise from
// transcript texture.
var (
	HighNoiseIndicators   = []string{"screaming", "shouting", "sirens", "glass breaking", "explosion", "bangs", "chaos"}
	MediumNoiseIndicators = []string{"background", "noise", "crowd", "music", "traffic", "sounds"}
)
