package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the knowledge database at dbPath,
// applying the schema and seeding the built-in procedures on first use.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seedProcedures(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed procedures: %w", err)
	}

	return s, nil
}

// newID yields a time-ordered row ID. ulid.Make uses the locked default
// entropy source, safe for concurrent inserts.
func (s *SQLiteStore) newID() string {
	return ulid.Make().String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id                TEXT PRIMARY KEY,
		call_id           TEXT NOT NULL,
		transcript        TEXT NOT NULL,
		emergency_type    TEXT NOT NULL,
		severity          TEXT NOT NULL,
		location          TEXT NOT NULL,
		noise_level       TEXT,
		emotion_intensity REAL NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scenarios_created ON scenarios(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_scenarios_type ON scenarios(emergency_type);

	CREATE TABLE IF NOT EXISTS procedures (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL UNIQUE,
		details        TEXT NOT NULL,
		emergency_type TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// InsertScenario records a finished call. Each session only inserts
// records keyed by its own call_id and timestamp, so concurrent inserts
// never race on shared rows.
func (s *SQLiteStore) InsertScenario(ctx context.Context, sc Scenario) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, call_id, transcript, emergency_type, severity, location, noise_level, emotion_intensity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.newID(), sc.CallID, sc.Transcript, sc.Category.String(), sc.Severity.String(),
		sc.Location, sc.NoiseLevel, sc.EmotionIntensity, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// scanWindow bounds how many recent scenarios are ranked per query.
const scanWindow = 500

// QuerySimilar ranks the most recent scenarios by token overlap with
// the query text and returns the top k.
func (s *SQLiteStore) QuerySimilar(ctx context.Context, text string, k int) ([]models.SimilarScenario, error) {
	if k <= 0 {
		k = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT transcript, emergency_type, severity, location, COALESCE(noise_level, ''), emotion_intensity
		FROM scenarios
		ORDER BY created_at DESC
		LIMIT ?`, scanWindow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queryTokens := tokenize(text)

	var ranked []models.SimilarScenario
	for rows.Next() {
		var sc models.SimilarScenario
		if err := rows.Scan(&sc.Transcript, &sc.EmergencyType, &sc.Severity, &sc.Location, &sc.NoiseLevel, &sc.EmotionIntensity); err != nil {
			return nil, err
		}
		sc.Score = overlapScore(queryTokens, tokenize(sc.Transcript))
		if sc.Score > 0 {
			ranked = append(ranked, sc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// QueryProcedures ranks all stored procedures by token overlap with the
// query and returns the top k.
func (s *SQLiteStore) QueryProcedures(ctx context.Context, query string, k int) ([]models.Procedure, error) {
	if k <= 0 {
		k = 3
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, details, emergency_type FROM procedures`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queryTokens := tokenize(query)

	var ranked []models.Procedure
	for rows.Next() {
		var p models.Procedure
		if err := rows.Scan(&p.Name, &p.Details, &p.Category); err != nil {
			return nil, err
		}
		p.Score = overlapScore(queryTokens, tokenize(p.Name+" "+p.Details+" "+p.Category))
		ranked = append(ranked, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
