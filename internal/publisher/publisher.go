package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runadvisor/internal/advisor"
	"runadvisor/internal/config"
	"runadvisor/internal/metrics"
	"time"

	"github.com/go-redis/redis/v8"
)

// Publisher hands finished reports to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, report *advisor.Report) error
	Close() error
}

// Advisory is the message published for each report
type Advisory struct {
	Location    string          `json:"location"`
	RiskLevel   string          `json:"risk_level"`
	HeatIndexC  float64         `json:"heat_index_c"`
	GeneratedAt time.Time       `json:"generated_at"`
	Report      *advisor.Report `json:"report"`
}

// NewAdvisory summarises a report for publishing
func NewAdvisory(r *advisor.Report) Advisory {
	return Advisory{
		Location:    r.Location.Name,
		RiskLevel:   r.Current.Risk.Level.String(),
		HeatIndexC:  r.Current.HeatIndex.HeatIndexC,
		GeneratedAt: r.GeneratedAt,
		Report:      r,
	}
}

func encode(r *advisor.Report) ([]byte, error) {
	data, err := json.Marshal(NewAdvisory(r))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize advisory for %s: %w", r.Location.Name, err)
	}
	return data, nil
}

// Noop drops every report
type Noop struct{}

func (Noop) Publish(context.Context, *advisor.Report) error { return nil }

func (Noop) Close() error { return nil }

// FromEnv builds the publisher selected by PUBLISH_SINK
func FromEnv(logger *slog.Logger) Publisher {
	switch config.GetPublishSink() {
	case config.SinkRedis:
		cfg := config.GetRedisConfig()
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		logger.Info("publishing advisories to redis", "addr", cfg.Addr, "stream", cfg.Stream)
		return NewRedisPublisher(client, cfg.Stream, cfg.MaxLen, logger)
	case config.SinkKafka:
		cfg := config.GetKafkaConfig()
		logger.Info("publishing advisories to kafka", "brokers", cfg.Brokers, "topic", cfg.Topic)
		return NewKafkaPublisher(cfg, logger)
	default:
		logger.Info("advisory publishing disabled")
		return Noop{}
	}
}

func record(sink string, err error) error {
	metrics.RecordPublish(sink, err)
	return err
}
