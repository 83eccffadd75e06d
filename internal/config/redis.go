package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	SinkRedis = "redis"
	SinkKafka = "kafka"
	SinkNone  = "none"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	MaxLen   int64
	Group    string
	Consumer string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func GetRedisConfig() RedisConfig {
	db := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, err := strconv.Atoi(dbStr); err == nil {
			db = parsed
		}
	}

	var maxLen int64 = 10000
	if s := os.Getenv("REDIS_STREAM_MAXLEN"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil && parsed >= 0 {
			maxLen = parsed
		}
	}

	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		Stream:   getEnv("REDIS_STREAM", "run_advisories"),
		MaxLen:   maxLen,
		Group:    getEnv("REDIS_GROUP", "advisory_watchers"),
		Consumer: getEnv("REDIS_CONSUMER", "watcher-1"),
	}
}

func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers: parseBrokers(getEnv("KAFKA_BROKERS", "localhost:9092")),
		Topic:   getEnv("KAFKA_TOPIC", "run-advisories"),
	}
}

// GetPublishSink returns the configured sink, one of redis, kafka or none
func GetPublishSink() string {
	switch sink := strings.ToLower(getEnv("PUBLISH_SINK", SinkRedis)); sink {
	case SinkRedis, SinkKafka:
		return sink
	default:
		return SinkNone
	}
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
