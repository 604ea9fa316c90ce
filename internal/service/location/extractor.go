// Package location finds place and address mentions in a transcript.
//
// Two interchangeable strategies exist: an entity-recognizer backed one
// when that capability is available at construction, and a regex-only
// fallback. Both paths return the sentinel NotSpecified when nothing is
// found; callers check for the sentinel rather than an error.
package location

import (
	"regexp"
	"strings"
)

// NotSpecified is the first-class sentinel returned when no location
// was extracted.
const NotSpecified = "Location not specified"

// Entity is a named entity recognized in text.
type Entity struct {
	Text  string
	Label string // GPE, LOC, FAC, PERSON, ORG, NORP, ...
}

// Recognizer is the optional named-entity-recognition capability.
type Recognizer interface {
	Recognize(text string) []Entity
}

var addressPatterns = []*regexp.Regexp{
	// Street addresses: "123 Main St"
	regexp.MustCompile(`\d+\s+[A-Za-z ]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl)\.?`),
	// Proper-name streets: "Oak Avenue"
	regexp.MustCompile(`[A-Z][a-z]+\s+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl)`),
	// City areas
	regexp.MustCompile(`(?i)(?:Downtown|Uptown|Midtown|City Center|Central Business District|CBD)`),
	// Landmarks: "Memorial Hospital"
	regexp.MustCompile(`[A-Z][a-z]+\s+(?:Park|Square|Mall|Center|Plaza|Hospital|School|University|Airport|Station)`),
	// "City, ST" with optional zip
	regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z]{2}(?:\s+\d{5})?`),
}

var landmarkKeywords = []string{
	"hospital", "school", "university", "airport", "station", "mall", "park",
	"hotel", "restaurant", "bank", "store", "center", "square", "plaza",
}

// Extractor resolves location mentions in transcripts.
type Extractor struct {
	recognizer Recognizer
}

// New returns a regex-only extractor.
func New() *Extractor {
	return &Extractor{}
}

// NewWithRecognizer returns an extractor backed by a named-entity
// recognizer, still unioned with the regex patterns. A nil recognizer
// degrades to the regex-only strategy.
func NewWithRecognizer(r Recognizer) *Extractor {
	return &Extractor{recognizer: r}
}

// Enhanced reports whether a recognizer capability is attached.
func (e *Extractor) Enhanced() bool {
	return e.recognizer != nil
}

// Extract returns the display string for all locations found in text,
// comma-joined and de-duplicated, or NotSpecified.
func (e *Extractor) Extract(text string) string {
	var locations []string

	if e.recognizer != nil {
		for _, ent := range e.recognizer.Recognize(text) {
			switch ent.Label {
			case "GPE", "LOC", "FAC":
				locations = appendUnique(locations, ent.Text)
			}
		}
		for _, p := range addressPatterns {
			for _, m := range p.FindAllString(text, -1) {
				locations = appendUnique(locations, m)
			}
		}
	} else {
		for _, p := range addressPatterns {
			for _, m := range p.FindAllString(text, -1) {
				locations = appendUnique(locations, m)
			}
		}
		for _, lm := range landmarkMentions(text) {
			locations = appendUnique(locations, lm)
		}
	}

	if len(locations) == 0 {
		return NotSpecified
	}
	return strings.Join(locations, ", ")
}

// Confidence derives the extraction confidence for text: proportional
// to the extracted string length, capped at 0.9 and floored at 0.3 once
// any match is found; 0.0 for the sentinel.
func (e *Extractor) Confidence(text string) float64 {
	loc := e.Extract(text)
	if loc == NotSpecified {
		return 0.0
	}
	conf := float64(len(loc)) / 50.0
	if conf > 0.9 {
		conf = 0.9
	}
	if conf < 0.3 {
		conf = 0.3
	}
	return conf
}

// landmarkMentions scans for landmark nouns and returns each with up to
// two words of leading context, lightly capitalized.
func landmarkMentions(text string) []string {
	words := strings.Fields(text)
	var out []string
	for i, w := range words {
		clean := strings.ToLower(strings.Trim(w, ".,!?"))
		for _, kw := range landmarkKeywords {
			if clean != kw {
				continue
			}
			start := i - 2
			if start < 0 {
				start = 0
			}
			var parts []string
			for _, cw := range words[start : i+1] {
				parts = append(parts, strings.Trim(cw, ".,!?"))
			}
			out = append(out, capitalizePhrase(strings.Join(parts, " ")))
		}
	}
	return out
}

func capitalizePhrase(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		lower := strings.ToLower(p)
		if i == 0 || isLandmarkWord(lower) {
			parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
		} else {
			parts[i] = p
		}
	}
	return strings.Join(parts, " ")
}

func isLandmarkWord(w string) bool {
	for _, kw := range landmarkKeywords {
		if w == kw {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
