package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runadvisor/internal/advisor"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
)

const (
	redisSink     = "redis"
	dataField     = "data"
	readBatchSize = 10
	readBlock     = 5 * time.Second
	readRetry     = time.Second
)

type streamWriter interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisPublisher appends advisories to a Redis stream
type RedisPublisher struct {
	client streamWriter
	stream string
	maxLen int64
	logger *slog.Logger
}

func NewRedisPublisher(client streamWriter, stream string, maxLen int64, logger *slog.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, stream: stream, maxLen: maxLen, logger: logger}
}

// Publish adds the advisory under the "data" field, trimming the stream to roughly maxLen entries
func (p *RedisPublisher) Publish(ctx context.Context, r *advisor.Report) error {
	data, err := encode(r)
	if err != nil {
		return record(redisSink, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			dataField:    string(data),
			"location":   r.Location.Name,
			"risk_level": r.Current.Risk.Level.String(),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return record(redisSink, fmt.Errorf("failed to publish to redis for %s: %w", r.Location.Name, err))
	}

	p.logger.Debug("published advisory", "sink", redisSink, "location", r.Location.Name, "id", id)
	return record(redisSink, nil)
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// DecodeMessage reads an advisory back out of a stream entry
func DecodeMessage(values map[string]interface{}) (*Advisory, error) {
	raw, ok := values[dataField].(string)
	if !ok {
		return nil, fmt.Errorf("stream entry has no %q field", dataField)
	}

	var adv Advisory
	if err := json.Unmarshal([]byte(raw), &adv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal advisory: %w", err)
	}
	return &adv, nil
}

type streamReader interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Handler processes one decoded advisory. Returning an error leaves the entry unacknowledged.
type Handler func(ctx context.Context, adv *Advisory) error

// StreamConsumer reads advisories from a Redis stream through a consumer group
type StreamConsumer struct {
	client   streamReader
	stream   string
	group    string
	consumer string
	logger   *slog.Logger
	clock    clockwork.Clock
}

func NewStreamConsumer(client streamReader, stream, group, consumer string, logger *slog.Logger) *StreamConsumer {
	return &StreamConsumer{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: consumer,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
	}
}

// Run creates the consumer group if needed and processes entries until ctx is canceled
func (c *StreamConsumer) Run(ctx context.Context, handle Handler) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    readBatchSize,
			Block:    readBlock,
		}).Result()

		if ctx.Err() != nil {
			return nil
		}

		if err != nil && !errors.Is(err, redis.Nil) {
			c.logger.Error("error reading from redis", "error", err, "retry_in", readRetry)
			select {
			case <-ctx.Done():
				return nil
			case <-c.clock.After(readRetry):
			}
			continue
		}

		for _, s := range streams {
			for _, m := range s.Messages {
				if ctx.Err() != nil {
					return nil
				}

				adv, err := DecodeMessage(m.Values)
				if err != nil {
					c.logger.Error("failed to decode message", "id", m.ID, "error", err)
					continue
				}

				if err := handle(ctx, adv); err != nil {
					c.logger.Error("failed to handle advisory", "id", m.ID, "location", adv.Location, "error", err)
					continue
				}

				c.client.XAck(context.Background(), c.stream, c.group, m.ID)
			}
		}
	}
}
