package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/config"
)

// Publisher delivers events. Callers treat publication as best effort.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// New returns a Kafka publisher, or a no-op one when no brokers are set.
func New(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		logrus.Info("Kafka brokers not configured, events will not be published")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
	}
	return &KafkaPublisher{writer: w, timeout: cfg.WriteTimeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Keyed by aggregate so events of one product stay ordered.
	msg := kafka.Message{
		Topic: event.EventType,
		Key:   []byte(event.AggregateID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "source", Value: []byte(event.Source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event to %s: %w", event.EventType, err)
	}

	logrus.WithFields(logrus.Fields{
		"topic":        event.EventType,
		"aggregate_id": event.AggregateID,
	}).Debug("event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *Event) error { return nil }
func (NoopPublisher) Close() error                          { return nil }
