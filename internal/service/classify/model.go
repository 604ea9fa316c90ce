package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

// LinearModel is a bag-of-words linear text classifier loaded from a
// JSON weight file exported by offline training. It implements
// TextModel.
type LinearModel struct {
	classes []linearClass
}

type linearClass struct {
	category models.EmergencyCategory
	bias     float64
	weights  map[string]float64
}

type modelFile struct {
	Classes map[string]struct {
		Bias    float64            `json:"bias"`
		Weights map[string]float64 `json:"weights"`
	} `json:"classes"`
}

// LoadLinearModel reads a weight file from disk. Callers treat a load
// failure as the capability being absent and construct the classifier
// without a model.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}
	if len(mf.Classes) == 0 {
		return nil, fmt.Errorf("model file %s has no classes", path)
	}

	m := &LinearModel{}
	for name, cls := range mf.Classes {
		cat, err := models.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		m.classes = append(m.classes, linearClass{
			category: cat,
			bias:     cls.Bias,
			weights:  cls.Weights,
		})
	}
	return m, nil
}

// Predict scores the text against every class and returns the best one.
// It abstains when no term of any class occurs in the text.
func (m *LinearModel) Predict(text string) (models.EmergencyCategory, float64, bool) {
	terms := strings.Fields(strings.ToLower(text))

	best := models.CategoryUnknown
	bestScore := 0.0
	matched := false
	for _, cls := range m.classes {
		score := cls.bias
		hit := false
		for _, t := range terms {
			if w, ok := cls.weights[t]; ok {
				score += w
				hit = true
			}
		}
		if hit && (!matched || score > bestScore) {
			best = cls.category
			bestScore = score
			matched = true
		}
	}
	return best, bestScore, matched
}
