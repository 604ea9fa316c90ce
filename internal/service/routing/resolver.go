// Package routing maps an emergency category to the department
// responsible for it.
package routing

import "github.com/Akhils696/rapid100-ai-dispatch/internal/models"

// DefaultDepartment handles UNKNOWN and any unmapped category, keeping
// the resolver total over the enum.
const DefaultDepartment = "General Emergency"

var departments = map[models.EmergencyCategory]string{
	models.CategoryFire:     "Fire Department",
	models.CategoryMedical:  "Ambulance Service",
	models.CategoryCrime:    "Police Department",
	models.CategoryAccident: "Emergency Services",
	models.CategoryDisaster: "Emergency Management",
}

// Resolve returns the department for the category. Never empty.
func Resolve(category models.EmergencyCategory) string {
	if dept, ok := departments[category]; ok {
		return dept
	}
	return DefaultDepartment
}
