// Package models defines the data structures shared across the triage
// pipeline: emergency categories, severity tiers, confidence maps and
// the decision record emitted per evaluated transcript.
package models

import "fmt"

// EmergencyCategory is the resolved emergency type of a call.
type EmergencyCategory int

const (
	CategoryMedical EmergencyCategory = iota
	CategoryFire
	CategoryCrime
	CategoryAccident
	CategoryDisaster
	// CategoryUnknown is the fallback when no signal matches. It stays a
	// valid routing target.
	CategoryUnknown
)

// Categories lists all categories in declaration order. The type
// classifier breaks score ties by this order, first declared wins.
var Categories = []EmergencyCategory{
	CategoryMedical,
	CategoryFire,
	CategoryCrime,
	CategoryAccident,
	CategoryDisaster,
	CategoryUnknown,
}

// String returns the wire representation of the category.
func (c EmergencyCategory) String() string {
	switch c {
	case CategoryMedical:
		return "MEDICAL"
	case CategoryFire:
		return "FIRE"
	case CategoryCrime:
		return "CRIME"
	case CategoryAccident:
		return "ACCIDENT"
	case CategoryDisaster:
		return "DISASTER"
	case CategoryUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("EmergencyCategory(%d)", int(c))
	}
}

// MarshalText serializes the category for JSON boundaries.
func (c EmergencyCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a wire category string.
func (c *EmergencyCategory) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory maps a wire string back to a category.
func ParseCategory(s string) (EmergencyCategory, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown emergency category %q", s)
}
