package models

import "time"

// RoutingDecision names the department responsible for a call and the
// confidence behind that assignment.
type RoutingDecision struct {
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
}

// LocationData carries optional structured coordinates resolved for a
// location string. Zero lat/lng with an empty area means unresolved.
type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Area      string  `json:"area"`
}

// Entities groups named entities recognized in a transcript.
type Entities struct {
	Locations     []string `json:"locations"`
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Misc          []string `json:"misc"`
}

// SimilarScenario is a past call returned by the knowledge store.
type SimilarScenario struct {
	Transcript       string  `json:"transcript"`
	EmergencyType    string  `json:"emergency_type"`
	Severity         string  `json:"severity"`
	Location         string  `json:"location"`
	NoiseLevel       string  `json:"background_noise,omitempty"`
	EmotionIntensity float64 `json:"emotion_intensity"`
	Score            float64 `json:"score"`
}

// Procedure is a response procedure returned by the knowledge store.
type Procedure struct {
	Name     string  `json:"procedure"`
	Details  string  `json:"details"`
	Category string  `json:"type"`
	Score    float64 `json:"score"`
}

// Decision is the structured output of one full pipeline run over a
// transcript. It is created once per evaluation, never mutated, and is
// the unit appended to the audit log and returned to the caller.
type Decision struct {
	ID              string            `json:"id"`
	CallID          string            `json:"call_id"`
	Transcript      string            `json:"transcript"`
	EmergencyType   EmergencyCategory `json:"emergency_type"`
	Severity        SeverityTier      `json:"severity"`
	Location        string            `json:"location"`
	LocationData    LocationData      `json:"location_data"`
	Routing         RoutingDecision   `json:"routing_decision"`
	Confidence      float64           `json:"confidence"`
	Explanation     string            `json:"explanation"`
	EmotionMeter    float64           `json:"emotion_meter"`
	NoiseConfidence float64           `json:"noise_confidence"`
	Language        string            `json:"language"`
	Timestamp       time.Time         `json:"timestamp"`
	Entities        *Entities         `json:"extracted_entities,omitempty"`

	SimilarScenarios   []SimilarScenario `json:"similar_scenarios"`
	RelevantProcedures []Procedure       `json:"relevant_procedures"`
}
