// Package events provides event publishing functionality.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/observability/metrics"
)

// Publisher publishes triage events to separate Kafka topics.
type Publisher struct {
	writerDecisions *kafka.Writer
	writerCalls     *kafka.Writer
	principal       string
	topicDecisions  string
	topicCalls      string
	enabled         bool
	metrics         *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers        []string
	TopicDecisions string
	TopicCalls     string
	Principal      string
	Enabled        bool
}

// New creates a new Kafka event publisher with separate topics for triage
// decisions and call lifecycle events.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	// Handle nil config case
	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled: false,
			metrics: m,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:      cfg.Principal,
			topicDecisions: cfg.TopicDecisions,
			topicCalls:     cfg.TopicCalls,
			enabled:        false,
			metrics:        m,
		}
	}

	// Create a custom dialer with longer timeouts for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	// Writer for triage decisions
	writerDecisions := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicDecisions,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	// Writer for call lifecycle events
	writerCalls := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicCalls,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicDecisions", cfg.TopicDecisions).
		Str("topicCalls", cfg.TopicCalls).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerDecisions: writerDecisions,
		writerCalls:     writerCalls,
		principal:       cfg.Principal,
		topicDecisions:  cfg.TopicDecisions,
		topicCalls:      cfg.TopicCalls,
		enabled:         true,
		metrics:         m,
	}
}

// PublishDecision publishes a triage decision event to the decisions topic.
func (p *Publisher) PublishDecision(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerDecisions, p.topicDecisions, "decision", key, event)
}

// PublishCallEvent publishes a call lifecycle event to the calls topic.
func (p *Publisher) PublishCallEvent(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerCalls, p.topicCalls, "call", key, event)
}

// publish is the internal method that writes to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	// Log the event
	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	// Publish to Kafka
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(topic)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerDecisions != nil {
		if e := p.writerDecisions.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing decisions writer")
			err = e
		}
	}
	if p.writerCalls != nil {
		if e := p.writerCalls.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing calls writer")
			err = e
		}
	}
	return err
}
