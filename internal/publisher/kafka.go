package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"runadvisor/internal/advisor"
	"runadvisor/internal/config"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const kafkaSink = "kafka"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher produces advisories to a Kafka topic, keyed by location
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, r *advisor.Report) error {
	msg, err := serializeToMessage(r)
	if err != nil {
		return record(kafkaSink, err)
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return record(kafkaSink, fmt.Errorf("failed to publish to kafka for %s: %w", r.Location.Name, err))
	}

	p.logger.Debug("published advisory", "sink", kafkaSink, "location", r.Location.Name)
	return record(kafkaSink, nil)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage keys by location so a location's advisories stay on one partition
func serializeToMessage(r *advisor.Report) (kafkago.Message, error) {
	data, err := encode(r)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   []byte(r.Location.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(r.Current.Risk.Level.String())},
			{Key: "generated_at", Value: []byte(r.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
