package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"flipboard/internal/config"
	"flipboard/internal/shared"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher ships round results somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, res shared.RoundResult) error
	Close() error
}

// KafkaPublisher writes each result as one JSON message keyed by room code,
// so all rounds of a room land on the same partition.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  true,
		BatchSize:              1,
		AllowAutoTopicCreation: true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("events: "+msg, args...)
		}),
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, res shared.RoundResult) error {
	value, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(res.RoomCode), Value: value}); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// NopPublisher drops every result.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, shared.RoundResult) error { return nil }
func (NopPublisher) Close() error                                      { return nil }

// New returns a Kafka publisher when brokers are configured.
func New(cfg config.Config) Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		log.Printf("events: no KAFKA_BROKERS set, round results stay local")
		return NopPublisher{}
	}
	log.Printf("events: publishing round results to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}
