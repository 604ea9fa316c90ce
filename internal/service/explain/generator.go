// Package explain assembles the human-readable rationale behind a
// triage decision from fixed trigger-phrase tables. Generation never
// returns an empty string: when no phrase matches it synthesizes a
// keyword summary, and as a last resort it falls back to a generic
// sentence naming category and severity.
package explain

import (
	"fmt"
	"strings"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

type rationale struct {
	Trigger string
	Text    string
}

var categoryRationales = map[models.EmergencyCategory][]rationale{
	models.CategoryMedical: {
		{"unconscious", "Person is not responsive, indicating a serious medical emergency"},
		{"breathing", "Breathing difficulty suggests immediate medical attention needed"},
		{"heart attack", "Classic sign of cardiac emergency requiring urgent care"},
		{"stroke", "Neurological emergency requiring immediate medical intervention"},
		{"bleeding", "Significant blood loss requires prompt medical attention"},
		{"pain", "Severe pain may indicate serious underlying condition"},
	},
	models.CategoryFire: {
		{"fire", "Active fire poses immediate danger to life and property"},
		{"smoke", "Smoke inhalation is deadly, evacuation needed immediately"},
		{"burning", "Combustible materials are ignited, spreading risk"},
		{"flames", "Visible flames indicate active fire requiring suppression"},
	},
	models.CategoryCrime: {
		{"gun", "Firearm present creates extreme danger to all parties"},
		{"shot", "Gunshot wounds are life-threatening and require immediate response"},
		{"robbery", "Criminal act in progress with potential for violence"},
		{"break in", "Unauthorized entry indicates security breach and potential threat"},
		{"assault", "Physical attack occurring requiring law enforcement"},
		{"dangerous", "Situation presents risk to public safety"},
	},
	models.CategoryAccident: {
		{"accident", "Traffic incident with potential for injuries and hazards"},
		{"crash", "Vehicle collision likely caused injuries and road hazards"},
		{"collision", "Impact event that may have caused trauma to individuals"},
		{"injured", "People harmed requiring medical attention"},
		{"wreck", "Severe vehicle damage suggesting significant impact"},
	},
	models.CategoryDisaster: {
		{"tornado", "Severe weather event causing widespread destruction"},
		{"hurricane", "Major storm system creating emergency conditions"},
		{"earthquake", "Ground shaking causing structural damage and hazards"},
		{"flood", "Water overflow creating dangerous conditions"},
		{"emergency", "Declared state of emergency requiring coordinated response"},
	},
}

var severityRationales = map[models.SeverityTier][]rationale{
	models.SeverityCritical: {
		{"unconscious", "Victim unresponsive, immediate life threat"},
		{"not breathing", "Respiratory failure, minutes matter"},
		{"heart attack", "Cardiac arrest, time-sensitive intervention"},
		{"stroke", "Brain function compromised, urgent treatment needed"},
		{"bleeding heavily", "Rapid blood loss, shock risk"},
		{"life-threatening", "Immediate danger to life"},
	},
	models.SeverityHigh: {
		{"injured", "Physical harm requiring medical attention"},
		{"pain", "Discomfort indicating possible injury"},
		{"fire", "Dangerous situation needing rapid response"},
		{"urgent", "Time-sensitive but not immediately life-threatening"},
		{"serious", "Substantial risk or harm present"},
	},
	models.SeverityMedium: {
		{"sick", "Illness requiring evaluation"},
		{"minor injury", "Less severe harm but still needs attention"},
		{"medical concern", "Health issue that should be checked"},
		{"property damage", "Material loss but no immediate personal danger"},
	},
	models.SeverityLow: {
		{"inquiry", "Information request, non-emergency"},
		{"non-urgent", "Can wait for routine handling"},
		{"routine", "Standard procedure, no immediate action needed"},
	},
}

// Generator produces decision rationales.
type Generator struct{}

// New returns an explanation generator.
func New() *Generator {
	return &Generator{}
}

// Explain builds the rationale for classifying text as the given
// category and severity. Category rationales come first, then severity
// ones, space-separated.
func (g *Generator) Explain(text string, category models.EmergencyCategory, severity models.SeverityTier) string {
	lowered := strings.ToLower(text)

	var parts []string
	parts = append(parts, matching(lowered, categoryRationales[category], "emergency type")...)
	parts = append(parts, matching(lowered, severityRationales[severity], "severity level")...)

	if len(parts) == 0 {
		return fmt.Sprintf(
			"The system classified this as %s with %s severity based on analysis of the audio transcription and contextual cues.",
			category, severity)
	}
	return strings.Join(parts, " ")
}

// matching collects the rationales whose trigger phrase occurs in the
// lowered text. When a table exists for the label but nothing matched
// (fallback-decided labels), it synthesizes a summary naming the first
// three trigger phrases.
func matching(lowered string, table []rationale, kind string) []string {
	var out []string
	for _, r := range table {
		if strings.Contains(lowered, r.Trigger) {
			out = append(out, r.Text)
		}
	}
	if len(out) == 0 && len(table) > 0 {
		n := len(table)
		if n > 3 {
			n = 3
		}
		triggers := make([]string, 0, n)
		for _, r := range table[:n] {
			triggers = append(triggers, r.Trigger)
		}
		out = append(out, fmt.Sprintf(
			"Keywords like '%s' in the text led to this %s determination.",
			strings.Join(triggers, ", "), kind))
	}
	return out
}
