package events

import (
	"context"
	"testing"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"empty brokers", &Config{Enabled: true, Brokers: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writerDecisions != nil {
				t.Error("expected nil decisions writer when disabled")
			}
			if p.writerCalls != nil {
				t.Error("expected nil calls writer when disabled")
			}
		})
	}
}

func TestNew_ConfigValues(t *testing.T) {
	cfg := &Config{
		Enabled:        false,
		Brokers:        []string{"localhost:9092"},
		TopicDecisions: "test.decisions",
		TopicCalls:     "test.calls",
		Principal:      "test-principal",
	}

	p := New(cfg)

	if p.principal != "test-principal" {
		t.Errorf("expected principal 'test-principal', got %s", p.principal)
	}
	if p.topicDecisions != "test.decisions" {
		t.Errorf("expected topic decisions 'test.decisions', got %s", p.topicDecisions)
	}
	if p.topicCalls != "test.calls" {
		t.Errorf("expected topic calls 'test.calls', got %s", p.topicCalls)
	}
}

func TestPublisher_PublishDecision_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	event := map[string]string{"emergency_type": "FIRE"}
	err := p.PublishDecision(context.Background(), "test-key", event)

	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestPublisher_PublishCallEvent_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	event := map[string]string{"state": "CLOSED"}
	err := p.PublishCallEvent(context.Background(), "test-key", event)

	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestPublisher_PublishDecision_InvalidJSON(t *testing.T) {
	p := New(&Config{Enabled: false})

	// Create an unmarshalable value (channel)
	event := make(chan int)
	err := p.PublishDecision(context.Background(), "test-key", event)

	if err == nil {
		t.Error("expected error for unmarshalable event")
	}
}

func TestPublisher_PublishCallEvent_InvalidJSON(t *testing.T) {
	p := New(&Config{Enabled: false})

	// Create an unmarshalable value (channel)
	event := make(chan int)
	err := p.PublishCallEvent(context.Background(), "test-key", event)

	if err == nil {
		t.Error("expected error for unmarshalable event")
	}
}

func TestPublisher_Close_NoWriters(t *testing.T) {
	p := New(&Config{Enabled: false})

	err := p.Close()
	if err != nil {
		t.Errorf("expected no error closing disabled publisher, got %v", err)
	}
}

func TestPublisher_Close_NilPublisher(t *testing.T) {
	p := &Publisher{
		writerDecisions: nil,
		writerCalls:     nil,
	}

	err := p.Close()
	if err != nil {
		t.Errorf("expected no error closing publisher with nil writers, got %v", err)
	}
}

type testEvent struct {
	EventType string `json:"eventType"`
	CallID    string `json:"call_id"`
	Category  string `json:"emergency_type"`
}

func TestPublisher_PublishDecision_ValidEvent(t *testing.T) {
	p := New(&Config{
		Enabled:        false,
		TopicDecisions: "test.decisions",
		Principal:      "test-svc",
	})

	event := testEvent{
		EventType: "call.triage.decision",
		CallID:    "call-123",
		Category:  "MEDICAL",
	}

	err := p.PublishDecision(context.Background(), "call-123", event)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestPublisher_PublishCallEvent_ValidEvent(t *testing.T) {
	p := New(&Config{
		Enabled:    false,
		TopicCalls: "test.calls",
		Principal:  "test-svc",
	})

	event := testEvent{
		EventType: "call.lifecycle.closed",
		CallID:    "call-123",
	}

	err := p.PublishCallEvent(context.Background(), "call-123", event)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
