package models

import "fmt"

// SeverityTier is the urgency ranking of a call. Tiers are ordered:
// CRITICAL > HIGH > MEDIUM > LOW. The scorer breaks ties by this
// declaration order, so critical signals always dominate.
type SeverityTier int

const (
	SeverityCritical SeverityTier = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
)

// SeverityTiers lists all tiers in precedence order.
var SeverityTiers = []SeverityTier{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
}

// MoreUrgent reports whether s outranks other.
func (s SeverityTier) MoreUrgent(other SeverityTier) bool {
	return s < other
}

// String returns the wire representation of the tier.
func (s SeverityTier) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	default:
		return fmt.Sprintf("SeverityTier(%d)", int(s))
	}
}

// MarshalText serializes the tier for JSON boundaries.
func (s SeverityTier) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a wire tier string.
func (s *SeverityTier) UnmarshalText(b []byte) error {
	parsed, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity maps a wire string back to a tier.
func ParseSeverity(str string) (SeverityTier, error) {
	for _, s := range SeverityTiers {
		if s.String() == str {
			return s, nil
		}
	}
	return SeverityMedium, fmt.Errorf("unknown severity tier %q", str)
}
