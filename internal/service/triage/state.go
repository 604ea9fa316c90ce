// Package triage runs the per-transcript evaluation pipeline and manages
// the lifecycle of a call session.
package triage

import (
	"errors"
	"fmt"
	"sync"
)

// State represents the lifecycle state of a call session.
type State int

const (
	// StateOpen - Connection accepted, no data yet.
	StateOpen State = iota
	// StateConfigured - Caller configuration applied, no audio yet.
	StateConfigured
	// StateStreaming - Actively receiving audio, producing decisions.
	StateStreaming
	// StateClosing - Disconnect or fatal error observed, flush pending.
	StateClosing
	// StateClosed - Flush done, resources released. Terminal.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateConfigured:
		return "CONFIGURED"
	case StateStreaming:
		return "STREAMING"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// IsTerminal returns true if the state is CLOSED.
func (s State) IsTerminal() bool {
	return s == StateClosed
}

// Errors for invalid state transitions.
var (
	ErrSessionClosed    = errors.New("session is closed")
	ErrSessionFinalized = errors.New("session finalization already started")
)

// Lifecycle manages the state machine for a single call session.
// Thread-safe for concurrent access.
//
// State transitions:
//
//	OPEN → CONFIGURED → STREAMING → CLOSING → CLOSED
//	  │                     ▲
//	  └─────────────────────┘  (first message is audio, defaults apply)
//
// Rules:
//   - OPEN: Can accept config (→ CONFIGURED) or audio (→ STREAMING).
//   - CONFIGURED: Re-entrant for config; audio moves to STREAMING.
//   - STREAMING: Accepts audio and config without transition.
//   - CLOSING: Entered exactly once, from any earlier state. No more input.
//   - CLOSED: All operations return errors.
type Lifecycle struct {
	mu     sync.RWMutex
	callID string
	state  State
}

// NewLifecycle creates a new call lifecycle in OPEN state.
func NewLifecycle(callID string) *Lifecycle {
	return &Lifecycle{
		callID: callID,
		state:  StateOpen,
	}
}

// CallID returns the call ID.
func (l *Lifecycle) CallID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.callID
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// IsClosed returns true if the session reached its terminal state.
func (l *Lifecycle) IsClosed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.IsTerminal()
}

// AcceptConfig validates a configuration message and applies the state
// transition. Configuration is re-entrant in every pre-close state.
func (l *Lifecycle) AcceptConfig() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateOpen:
		l.state = StateConfigured
		return nil
	case StateConfigured, StateStreaming:
		// Re-entrant, no transition
		return nil
	case StateClosing:
		return ErrSessionFinalized
	case StateClosed:
		return ErrSessionClosed
	default:
		return fmt.Errorf("unexpected state: %v", l.state)
	}
}

// AcceptAudio validates an audio chunk and applies the state transition.
// Skipping configuration is legal, defaults apply.
func (l *Lifecycle) AcceptAudio() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateOpen, StateConfigured:
		l.state = StateStreaming
		return nil
	case StateStreaming:
		return nil
	case StateClosing:
		return ErrSessionFinalized
	case StateClosed:
		return ErrSessionClosed
	default:
		return fmt.Errorf("unexpected state: %v", l.state)
	}
}

// BeginClose transitions to CLOSING. Returns true for exactly one
// caller; later callers see false and must not run finalization.
func (l *Lifecycle) BeginClose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateClosing || l.state == StateClosed {
		return false
	}
	l.state = StateClosing
	return true
}

// FinishClose transitions CLOSING to CLOSED. Idempotent.
func (l *Lifecycle) FinishClose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = StateClosed
}
