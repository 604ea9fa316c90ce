package triage

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/knowledge"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/metrics"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/classify"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/explain"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/location"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/routing"
	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/severity"
)

// Result limits for the knowledge store attachments.
const (
	similarK    = 3
	proceduresK = 2
)

// Pipeline runs the full evaluation over one transcript and assembles a
// Decision. The stage components are stateless and shared across all
// sessions; the knowledge store may be nil, attachments then stay empty.
type Pipeline struct {
	classifier *classify.Classifier
	scorer     *severity.Scorer
	locator    *location.Extractor
	explainer  *explain.Generator
	store      knowledge.Store
	metrics    *metrics.Metrics
}

// NewPipeline constructs a pipeline from its stage components.
func NewPipeline(classifier *classify.Classifier, scorer *severity.Scorer, locator *location.Extractor, explainer *explain.Generator, store knowledge.Store) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		scorer:     scorer,
		locator:    locator,
		explainer:  explainer,
		store:      store,
		metrics:    metrics.DefaultMetrics,
	}
}

// NewDefaultPipeline constructs a pipeline with rule-only stage
// components and no knowledge store.
func NewDefaultPipeline() *Pipeline {
	return NewPipeline(classify.New(), severity.New(), location.New(), explain.New(), nil)
}

// Evaluate runs every stage over the transcript and returns the
// assembled Decision. The transcript must be non-empty; silence is the
// caller's concern.
func (p *Pipeline) Evaluate(ctx context.Context, callID, text, language string) *models.Decision {
	start := time.Now()

	category, categoryConf := p.classifier.Classify(text)
	tier, _ := p.scorer.Score(text)
	loc := p.locator.Extract(text)
	explanation := p.explainer.Explain(text, category, tier)
	department := routing.Resolve(category)

	confidence := categoryConf.Share(category)
	entities := p.locator.Entities(text)

	d := &models.Decision{
		ID:            ulid.Make().String(),
		CallID:        callID,
		Transcript:    text,
		EmergencyType: category,
		Severity:      tier,
		Location:      loc,
		LocationData:  location.Resolve(loc),
		Routing: models.RoutingDecision{
			Department: department,
			Confidence: confidence,
		},
		Confidence:      confidence,
		Explanation:     explanation,
		EmotionMeter:    p.scorer.EmotionIntensity(text),
		NoiseConfidence: p.scorer.BackgroundNoise(text).Confidence(),
		Language:        language,
		Timestamp:       time.Now().UTC(),
		Entities:        &entities,

		SimilarScenarios:   []models.SimilarScenario{},
		RelevantProcedures: []models.Procedure{},
	}

	p.attachKnowledge(ctx, d, text)

	p.metrics.RecordDecision(category.String(), tier.String(), time.Since(start).Seconds())
	return d
}

// Noise reports the background noise estimate for a transcript. Used by
// sessions to tag the scenario contributed on close.
func (p *Pipeline) Noise(text string) severity.NoiseLevel {
	return p.scorer.BackgroundNoise(text)
}

// attachKnowledge fills the similar-scenario and procedure attachments.
// Best-effort: query failures are logged and leave the attachments empty.
func (p *Pipeline) attachKnowledge(ctx context.Context, d *models.Decision, text string) {
	if p.store == nil {
		return
	}

	similar, err := p.store.QuerySimilar(ctx, text, similarK)
	if err != nil {
		log.Warn().Err(err).Str("callId", d.CallID).Msg("Similar-scenario query failed")
		p.metrics.KnowledgeQueryErrors.Inc()
	} else if similar != nil {
		d.SimilarScenarios = similar
	}

	procedures, err := p.store.QueryProcedures(ctx, text, proceduresK)
	if err != nil {
		log.Warn().Err(err).Str("callId", d.CallID).Msg("Procedure query failed")
		p.metrics.KnowledgeQueryErrors.Inc()
	} else if procedures != nil {
		d.RelevantProcedures = procedures
	}
}
