package routing

import (
	"testing"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

func TestResolve_Mapping(t *testing.T) {
	tests := []struct {
		category models.EmergencyCategory
		want     string
	}{
		{models.CategoryFire, "Fire Department"},
		{models.CategoryMedical, "Ambulance Service"},
		{models.CategoryCrime, "Police Department"},
		{models.CategoryAccident, "Emergency Services"},
		{models.CategoryDisaster, "Emergency Management"},
		{models.CategoryUnknown, DefaultDepartment},
	}
	for _, tt := range tests {
		if got := Resolve(tt.category); got != tt.want {
			t.Errorf("Resolve(%v) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestResolve_TotalOverFutureValues(t *testing.T) {
	// Unmapped enum values fall through to the default department.
	if got := Resolve(models.EmergencyCategory(99)); got != DefaultDepartment {
		t.Errorf("Resolve(99) = %q, want %q", got, DefaultDepartment)
	}
	for _, c := range models.Categories {
		if Resolve(c) == "" {
			t.Errorf("Resolve(%v) returned empty department", c)
		}
	}
}
