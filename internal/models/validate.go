package models

import "fmt"

// ValidateDecision checks the invariants every emitted decision must
// hold before it crosses the service boundary.
func ValidateDecision(d *Decision) error {
	if d == nil {
		return fmt.Errorf("nil decision")
	}
	if d.CallID == "" {
		return fmt.Errorf("decision missing call_id")
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("decision confidence out of range: %f", d.Confidence)
	}
	if d.EmotionMeter < 0 || d.EmotionMeter > 1 {
		return fmt.Errorf("emotion meter out of range: %f", d.EmotionMeter)
	}
	if d.Routing.Department == "" {
		return fmt.Errorf("decision missing routing department")
	}
	if d.Explanation == "" {
		return fmt.Errorf("decision missing explanation")
	}
	if d.Location == "" {
		return fmt.Errorf("decision missing location string")
	}
	return nil
}
