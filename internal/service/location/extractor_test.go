package location

import (
	"strings"
	"testing"
)

func TestExtract_StreetAddressAndArea(t *testing.T) {
	e := New()
	got := e.Extract("Address is 123 Main St, Downtown.")
	if !strings.Contains(got, "123 Main St") {
		t.Errorf("expected street address in %q", got)
	}
	if !strings.Contains(got, "Downtown") {
		t.Errorf("expected area in %q", got)
	}
}

func TestExtract_Landmark_Capitalized(t *testing.T) {
	e := New()
	got := e.Extract("I am near the central hospital")
	if !strings.Contains(got, "Hospital") {
		t.Errorf("expected capitalized landmark noun in %q", got)
	}
}

func TestExtract_Nothing_Sentinel(t *testing.T) {
	e := New()
	got := e.Extract("nothing to report")
	if got != NotSpecified {
		t.Errorf("expected sentinel, got %q", got)
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	e := New()
	got := e.Extract("Downtown, I repeat, Downtown")
	if strings.Count(got, "Downtown") != 1 {
		t.Errorf("expected one Downtown mention, got %q", got)
	}
}

func TestConfidence(t *testing.T) {
	e := New()

	if got := e.Confidence("nothing to report"); got != 0.0 {
		t.Errorf("expected 0.0 for sentinel, got %f", got)
	}

	// Short match floors at 0.3.
	if got := e.Confidence("meet me Downtown"); got != 0.3 {
		t.Errorf("expected floor 0.3 for short match, got %f", got)
	}

	// Long match caps at 0.9.
	long := "Address is 123 " + strings.Repeat("a", 46) + " Street"
	if got := e.Confidence(long); got != 0.9 {
		t.Errorf("expected cap 0.9 for long match, got %f", got)
	}

	// Mid-length match is proportional to length/50.
	got := e.Confidence("Address is 123 Main St, Downtown.")
	if got <= 0.3 || got >= 0.9 {
		t.Errorf("expected proportional confidence between bounds, got %f", got)
	}
}

type fakeRecognizer struct {
	entities []Entity
}

func (r fakeRecognizer) Recognize(string) []Entity {
	return r.entities
}

func TestExtract_WithRecognizer_Union(t *testing.T) {
	e := NewWithRecognizer(fakeRecognizer{entities: []Entity{
		{Text: "Springfield", Label: "GPE"},
		{Text: "John", Label: "PERSON"},
	}})
	if !e.Enhanced() {
		t.Fatal("expected recognizer-backed extractor to report enhanced")
	}

	got := e.Extract("fire near 456 Oak Ave in Springfield")
	if !strings.Contains(got, "Springfield") {
		t.Errorf("expected recognizer entity in %q", got)
	}
	if !strings.Contains(got, "456 Oak Ave") {
		t.Errorf("expected regex match unioned in %q", got)
	}
	if strings.Contains(got, "John") {
		t.Errorf("person entity must not appear as a location: %q", got)
	}
}

func TestEntities_Grouping(t *testing.T) {
	e := NewWithRecognizer(fakeRecognizer{entities: []Entity{
		{Text: "Springfield", Label: "GPE"},
		{Text: "John", Label: "PERSON"},
		{Text: "Red Cross", Label: "ORG"},
		{Text: "Tuesday", Label: "DATE"},
	}})

	got := e.Entities("irrelevant")
	if len(got.Locations) != 1 || got.Locations[0] != "Springfield" {
		t.Errorf("unexpected locations: %v", got.Locations)
	}
	if len(got.Persons) != 1 || got.Persons[0] != "John" {
		t.Errorf("unexpected persons: %v", got.Persons)
	}
	if len(got.Organizations) != 1 || got.Organizations[0] != "Red Cross" {
		t.Errorf("unexpected organizations: %v", got.Organizations)
	}
	if len(got.Misc) != 1 {
		t.Errorf("unexpected misc: %v", got.Misc)
	}
}

func TestEntities_WithoutRecognizer(t *testing.T) {
	e := New()
	got := e.Entities("Address is 123 Main St")
	if len(got.Locations) != 1 {
		t.Fatalf("expected one location, got %v", got.Locations)
	}
	if got.Persons == nil || got.Organizations == nil || got.Misc == nil {
		t.Error("entity groups must be non-nil for serialization")
	}
}

func TestResolve(t *testing.T) {
	data := Resolve("123 Main St, Downtown")
	if data.Area == "" {
		t.Error("expected area to carry the location string")
	}
	if data.Latitude == 0 || data.Longitude == 0 {
		t.Error("expected known area to resolve coordinates")
	}

	if got := Resolve(NotSpecified); got.Area != "" || got.Latitude != 0 {
		t.Errorf("expected zero value for sentinel, got %+v", got)
	}
}
