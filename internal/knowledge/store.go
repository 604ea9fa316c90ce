// Package knowledge provides the similarity-search store over past
// emergency scenarios and response procedures. All operations are
// best-effort from the orchestrator's point of view: failures are
// logged by callers and never reach the caller-facing decision.
package knowledge

import (
	"context"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

// Scenario is one past call contributed to the store.
type Scenario struct {
	CallID           string
	Transcript       string
	Category         models.EmergencyCategory
	Severity         models.SeverityTier
	Location         string
	NoiseLevel       string
	EmotionIntensity float64
}

// Store is the knowledge-base contract consumed by the orchestrator.
type Store interface {
	// InsertScenario records a finished call for future retrieval.
	InsertScenario(ctx context.Context, s Scenario) error

	// QuerySimilar returns up to k past scenarios ranked by similarity
	// to the text.
	QuerySimilar(ctx context.Context, text string, k int) ([]models.SimilarScenario, error)

	// QueryProcedures returns up to k response procedures ranked by
	// relevance to the query.
	QueryProcedures(ctx context.Context, query string, k int) ([]models.Procedure, error)

	Close() error
}
