package location

import (
	"fmt"
	"strings"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

// Entities extracts the named entities of the transcript grouped by
// kind. Without a recognizer only locations are populated, from the
// regex strategy.
func (e *Extractor) Entities(text string) models.Entities {
	out := models.Entities{
		Locations:     []string{},
		Persons:       []string{},
		Organizations: []string{},
		Misc:          []string{},
	}

	if e.recognizer == nil {
		if loc := e.Extract(text); loc != NotSpecified {
			out.Locations = append(out.Locations, loc)
		}
		return out
	}

	for _, ent := range e.recognizer.Recognize(text) {
		switch ent.Label {
		case "GPE", "LOC", "FAC":
			out.Locations = append(out.Locations, ent.Text)
		case "PERSON":
			out.Persons = append(out.Persons, ent.Text)
		case "ORG", "NORP":
			out.Organizations = append(out.Organizations, ent.Text)
		default:
			out.Misc = append(out.Misc, fmt.Sprintf("%s (%s)", ent.Text, ent.Label))
		}
	}
	return out
}

// knownAreas maps well-known area names to coordinates for the
// structured location_data block. Unlisted locations stay unresolved
// with only the area string set.
var knownAreas = map[string][2]float64{
	"downtown": {40.7128, -74.0060},
	"uptown":   {40.8116, -73.9465},
	"midtown":  {40.7549, -73.9840},
}

// Resolve builds the structured LocationData for an extracted location
// string. The sentinel resolves to the zero value.
func Resolve(loc string) models.LocationData {
	if loc == NotSpecified || loc == "" {
		return models.LocationData{}
	}
	data := models.LocationData{Area: loc}
	for name, coords := range knownAreas {
		if strings.Contains(strings.ToLower(loc), name) {
			data.Latitude = coords[0]
			data.Longitude = coords[1]
			break
		}
	}
	return data
}
