package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafka.Writer used by the relay.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig configures the Kafka relay.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// NewKafkaWriter creates an asynchronous writer that hashes on the message
// key, so all events for one project land on the same partition in order.
// WriteMessages only enqueues; delivery failures are logged by the
// completion callback instead of reaching the request goroutine.
func NewKafkaWriter(cfg KafkaConfig, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		WriteTimeout: cfg.WriteTimeout,
		Completion:   logDelivery(cfg.Topic, logger),
	}
}

func logDelivery(topic string, logger *zap.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, msg := range msgs {
			logger.Error("kafka delivery failed",
				zap.String("topic", topic),
				zap.String("key", string(msg.Key)),
				zap.String("event_type", headerValue(msg, "event_type")),
				zap.String("event_id", headerValue(msg, "event_id")),
				zap.Error(err),
			)
		}
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// KafkaRelay forwards lifecycle events to a Kafka topic as JSON, keyed by project ID.
type KafkaRelay struct {
	writer  MessageWriter
	timeout time.Duration
	logger  *zap.Logger
}

// NewKafkaRelay creates a new relay.
func NewKafkaRelay(writer MessageWriter, timeout time.Duration, logger *zap.Logger) *KafkaRelay {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaRelay{writer: writer, timeout: timeout, logger: logger}
}

// Handles implements Handler.
func (r *KafkaRelay) Handles() []string {
	return LifecycleTypes()
}

// Handle implements Handler.
func (r *KafkaRelay) Handle(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventType(), err)
	}

	key := event.AggregateID().String()
	if scoped, ok := event.(ProjectScoped); ok {
		key = scoped.ScopeProjectID().String()
	}

	// The request context may be cancelled right after the response is written.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "event_id", Value: []byte(event.EventID().String())},
		},
	}
	if err := r.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("relay %s: %w", event.EventType(), err)
	}

	r.logger.Debug("relayed event",
		zap.String("event_type", event.EventType()),
		zap.String("key", key),
	)
	return nil
}

// Close closes the underlying writer.
func (r *KafkaRelay) Close() error {
	if r == nil || r.writer == nil {
		return nil
	}
	return r.writer.Close()
}
