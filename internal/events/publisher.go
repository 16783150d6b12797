// Package events publishes completion events to Kafka. Publishing is
// best-effort: a broker outage never fails the originating request.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"fittrack/internal/middleware"
	"fittrack/internal/observability"

	"github.com/segmentio/kafka-go"
)

// Entity kinds carried in completion events.
const (
	EntityWorkout = "workout"
	EntityGoal    = "goal"
)

// CompletionEvent is emitted whenever a workout or goal flips completion
// state, in either direction.
type CompletionEvent struct {
	Entity     string    `json:"entity"`
	EntityID   uint      `json:"entity_id"`
	UserID     uint      `json:"user_id"`
	Completed  bool      `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits completion events.
type Publisher interface {
	PublishCompletion(ctx context.Context, event CompletionEvent)
	Close() error
}

// kafkaPublisher writes completion events to a Kafka topic, keyed by user so
// a consumer sees one user's events in order.
type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
// With no brokers configured it returns a no-op publisher.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		middleware.Logger.Info("Kafka brokers not configured, completion events disabled")
		return noopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) PublishCompletion(ctx context.Context, event CompletionEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Failed to encode completion event", "error", err, "entity", event.Entity)
		observability.CompletionEventsPublished.WithLabelValues(event.Entity, "error").Inc()
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.UserID), 10)),
		Value: payload,
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Failed to publish completion event",
			"error", err, "entity", event.Entity, "entity_id", event.EntityID)
		observability.CompletionEventsPublished.WithLabelValues(event.Entity, "error").Inc()
		return
	}
	observability.CompletionEventsPublished.WithLabelValues(event.Entity, "ok").Inc()
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// noopPublisher drops every event.
type noopPublisher struct{}

func (noopPublisher) PublishCompletion(context.Context, CompletionEvent) {}
func (noopPublisher) Close() error                                      { return nil }
