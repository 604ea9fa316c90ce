package knowledge

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "knowledge.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndQuerySimilar_Ranking(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	scenarios := []Scenario{
		{CallID: "c1", Transcript: "house fire with heavy smoke in the kitchen", Category: models.CategoryFire, Severity: models.SeverityHigh, Location: "456 Oak Ave"},
		{CallID: "c2", Transcript: "car crash on the highway with injured people", Category: models.CategoryAccident, Severity: models.SeverityHigh, Location: "Highway 101"},
		{CallID: "c3", Transcript: "routine noise complaint from a neighbor", Category: models.CategoryCrime, Severity: models.SeverityLow, Location: "Location not specified"},
	}
	for _, sc := range scenarios {
		if err := s.InsertScenario(ctx, sc); err != nil {
			t.Fatalf("InsertScenario(%s): %v", sc.CallID, err)
		}
	}

	got, err := s.QuerySimilar(ctx, "fire and smoke in my kitchen", 2)
	if err != nil {
		t.Fatalf("QuerySimilar: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected at least one similar scenario")
	}
	if got[0].Transcript != scenarios[0].Transcript {
		t.Errorf("expected the fire scenario ranked first, got %q", got[0].Transcript)
	}
	if got[0].Score <= 0 || got[0].Score > 1 {
		t.Errorf("score out of range: %f", got[0].Score)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Error("results not ordered by descending score")
		}
	}
}

func TestQuerySimilar_NoOverlap_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertScenario(ctx, Scenario{CallID: "c1", Transcript: "house fire", Category: models.CategoryFire, Severity: models.SeverityHigh}); err != nil {
		t.Fatalf("InsertScenario: %v", err)
	}

	got, err := s.QuerySimilar(ctx, "zebra quartz", 5)
	if err != nil {
		t.Fatalf("QuerySimilar: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results without token overlap, got %d", len(got))
	}
}

func TestQuerySimilar_RespectsK(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.InsertScenario(ctx, Scenario{CallID: "c", Transcript: "fire alarm ringing", Category: models.CategoryFire, Severity: models.SeverityMedium}); err != nil {
			t.Fatalf("InsertScenario: %v", err)
		}
	}

	got, err := s.QuerySimilar(ctx, "fire", 2)
	if err != nil {
		t.Fatalf("QuerySimilar: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}
}

func TestQueryProcedures_Seeded(t *testing.T) {
	s := newTestStore(t)

	got, err := s.QueryProcedures(context.Background(), "cardiac arrest not breathing", 2)
	if err != nil {
		t.Fatalf("QueryProcedures: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 procedures, got %d", len(got))
	}
	if got[0].Name != "Cardiopulmonary Resuscitation (CPR)" {
		t.Errorf("expected the CPR procedure ranked first, got %q", got[0].Name)
	}
}

func TestSeedProcedures_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.db")

	s1, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	// Reopening must not duplicate the seeded procedures.
	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	var count int
	if err := s2.db.QueryRow(`SELECT COUNT(*) FROM procedures`).Scan(&count); err != nil {
		t.Fatalf("count procedures: %v", err)
	}
	if count != len(seededProcedures) {
		t.Errorf("expected %d seeded procedures, got %d", len(seededProcedures), count)
	}
}

func TestTokenize_StripsStopwordsAndPunctuation(t *testing.T) {
	tokens := tokenize("The fire is in my kitchen!")
	if tokens["the"] || tokens["is"] || tokens["in"] || tokens["my"] {
		t.Error("stopwords must be dropped")
	}
	if !tokens["fire"] || !tokens["kitchen"] {
		t.Errorf("content terms missing: %v", tokens)
	}
}

func TestOverlapScore(t *testing.T) {
	q := tokenize("fire smoke kitchen")
	if got := overlapScore(q, tokenize("fire smoke kitchen")); got != 1.0 {
		t.Errorf("identical texts: score = %f, want 1.0", got)
	}
	if got := overlapScore(q, tokenize("fire alarm")); got <= 0 || got >= 1 {
		t.Errorf("partial overlap: score = %f, want in (0,1)", got)
	}
	if got := overlapScore(q, tokenize("")); got != 0 {
		t.Errorf("empty candidate: score = %f, want 0", got)
	}
}

func TestInsertScenario_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				sc := Scenario{
					CallID:     fmt.Sprintf("call-%d-%d", w, i),
					Transcript: "house fire with heavy smoke",
					Category:   models.CategoryFire,
					Severity:   models.SeverityHigh,
					Location:   "456 Oak Ave",
				}
				if err := s.InsertScenario(ctx, sc); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent InsertScenario: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count); err != nil {
		t.Fatalf("count scenarios: %v", err)
	}
	if count != workers*perWorker {
		t.Errorf("scenario count = %d, want %d", count, workers*perWorker)
	}
}
