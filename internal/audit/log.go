// Package audit persists every emitted decision to an append-only JSON
// Lines file. The file is opened and flushed per write so concurrent
// sessions append independently, relying on O_APPEND atomicity instead
// of a shared lock.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/models"
)

// Entry is one audit record, the durable subset of a decision.
type Entry struct {
	CallID      string                 `json:"call_id"`
	Timestamp   time.Time              `json:"timestamp"`
	Transcript  string                 `json:"transcript"`
	Category    string                 `json:"predicted_class"`
	Severity    string                 `json:"severity"`
	Routing     models.RoutingDecision `json:"routing_decision"`
	Confidence  float64                `json:"confidence"`
	Explanation string                 `json:"explanation"`
	Location    string                 `json:"location"`
}

// Log appends decisions to a JSONL file.
type Log struct {
	path string
	mu   sync.Mutex
}

// New creates an audit log writing to path, creating the parent
// directory when missing.
func New(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	return &Log{path: path}, nil
}

// Append writes one decision to the log.
func (l *Log) Append(d *models.Decision) error {
	entry := Entry{
		CallID:      d.CallID,
		Timestamp:   d.Timestamp,
		Transcript:  d.Transcript,
		Category:    d.EmergencyType.String(),
		Severity:    d.Severity.String(),
		Routing:     d.Routing,
		Confidence:  d.Confidence,
		Explanation: d.Explanation,
		Location:    d.Location,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return f.Sync()
}

// ReadLast returns up to n most recent entries, oldest first. A missing
// file yields an empty slice.
func (l *Log) ReadLast(n int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			// Skip torn or legacy lines rather than failing retrieval.
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan audit log: %w", err)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
