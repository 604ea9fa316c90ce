package classify

import (
	"math"
	"testing"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

func TestClassify_SingleCategoryTexts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.EmergencyCategory
	}{
		{"medical", "she had a stroke", models.CategoryMedical},
		{"fire", "flames everywhere", models.CategoryFire},
		{"crime", "a burglary in progress", models.CategoryCrime},
		{"accident", "a collision happened", models.CategoryAccident},
		{"disaster", "tsunami warning issued", models.CategoryDisaster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			got, conf := c.Classify(tt.text)
			if got != tt.want {
				t.Fatalf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for _, other := range models.Categories {
				if other == tt.want {
					continue
				}
				if conf[other] >= conf[tt.want] {
					t.Errorf("confidence for %v (%f) should be below winner %v (%f)",
						other, conf[other], tt.want, conf[tt.want])
				}
			}
		})
	}
}

func TestClassify_EmptyText_Unknown(t *testing.T) {
	c := New()
	got, conf := c.Classify("")
	if got != models.CategoryUnknown {
		t.Errorf("expected UNKNOWN for empty text, got %v", got)
	}
	if conf[models.CategoryUnknown] != 1.0 {
		t.Errorf("expected UNKNOWN confidence 1.0, got %f", conf[models.CategoryUnknown])
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("confidence map invalid: %v", err)
	}
}

func TestClassify_NoSignal_Unknown(t *testing.T) {
	c := New()
	got, _ := c.Classify("the quivering zebra jumped gladly")
	if got != models.CategoryUnknown {
		t.Errorf("expected UNKNOWN for signal-free text, got %v", got)
	}
}

func TestClassify_ConfidenceSumsToOne(t *testing.T) {
	texts := []string{
		"",
		"fire and smoke",
		"gun fire accident with injured people",
		"she is unconscious and not breathing",
	}
	c := New()
	for _, text := range texts {
		_, conf := c.Classify(text)
		if err := conf.Validate(); err != nil {
			t.Errorf("Classify(%q): invalid confidence map: %v", text, err)
		}
	}
}

func TestClassify_UnknownReserve(t *testing.T) {
	c := New()
	_, conf := c.Classify("flames everywhere")
	if math.Abs(conf[models.CategoryUnknown]-0.10) > 1e-9 {
		t.Errorf("expected fixed 0.10 reserve for UNKNOWN, got %f", conf[models.CategoryUnknown])
	}
	if math.Abs(conf[models.CategoryFire]-0.90) > 1e-9 {
		t.Errorf("expected 0.90 for sole matched category, got %f", conf[models.CategoryFire])
	}
}

func TestClassify_TieBreak_DeclarationOrder(t *testing.T) {
	// One FIRE hit and one CRIME hit; FIRE is declared first.
	c := New()
	got, _ := c.Classify("there is a gun and a blaze")
	if got != models.CategoryFire {
		t.Errorf("expected FIRE to win the tie by declaration order, got %v", got)
	}
}

type fixedModel struct {
	category models.EmergencyCategory
	ok       bool
}

func (m fixedModel) Predict(string) (models.EmergencyCategory, float64, bool) {
	return m.category, 0.9, m.ok
}

func TestClassify_ModelDecidesZeroCount(t *testing.T) {
	c := NewWithModel(fixedModel{category: models.CategoryFire, ok: true})
	got, _ := c.Classify("no trigger terms here")
	if got != models.CategoryFire {
		t.Errorf("expected model to decide the zero-count case, got %v", got)
	}
}

func TestClassify_ModelAbstains_Unknown(t *testing.T) {
	c := NewWithModel(fixedModel{ok: false})
	got, _ := c.Classify("no trigger terms here")
	if got != models.CategoryUnknown {
		t.Errorf("expected UNKNOWN when the model abstains, got %v", got)
	}
}

func TestClassify_ModelBreaksTie_OnlyAmongLeaders(t *testing.T) {
	tied := "there is a gun and a blaze"

	c := NewWithModel(fixedModel{category: models.CategoryCrime, ok: true})
	if got, _ := c.Classify(tied); got != models.CategoryCrime {
		t.Errorf("expected model to pick CRIME among the tied leaders, got %v", got)
	}

	// A prediction outside the leader set is ignored.
	c = NewWithModel(fixedModel{category: models.CategoryMedical, ok: true})
	if got, _ := c.Classify(tied); got != models.CategoryFire {
		t.Errorf("expected declaration-order winner when prediction is not a leader, got %v", got)
	}
}

func TestClassify_KeywordEvidenceBeatsModel(t *testing.T) {
	// A strict keyword maximum is never overridden by the model.
	c := NewWithModel(fixedModel{category: models.CategoryCrime, ok: true})
	got, _ := c.Classify("flames and smoke everywhere")
	if got != models.CategoryFire {
		t.Errorf("expected keyword winner FIRE despite model preference, got %v", got)
	}
}

func TestEnhanced(t *testing.T) {
	if New().Enhanced() {
		t.Error("rule-only classifier should not report enhanced")
	}
	if !NewWithModel(fixedModel{ok: true}).Enhanced() {
		t.Error("model-backed classifier should report enhanced")
	}
}
