package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runadvisor/internal/config"
	"runadvisor/internal/heat"
	"runadvisor/internal/logging"
	"runadvisor/internal/publisher"
	"syscall"

	"github.com/go-redis/redis/v8"
)

func main() {
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	format := flag.String("log-format", "text", "log format (text, json)")
	flag.Parse()

	config.LoadDotEnv()
	logger := logging.New(*level, *format)

	redisCfg := config.GetRedisConfig()
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := publisher.NewStreamConsumer(redisClient, redisCfg.Stream, redisCfg.Group, redisCfg.Consumer, logger)

	logger.Info("watching advisories, press Ctrl+C to stop", "stream", redisCfg.Stream, "group", redisCfg.Group)
	if err := consumer.Run(ctx, alertHandler(logger)); err != nil {
		log.Fatalf("Watch failed: %v", err)
	}
	logger.Info("watch service stopped")
}

// alertHandler logs a warning for every advisory at Risky or above
func alertHandler(logger *slog.Logger) publisher.Handler {
	return func(_ context.Context, adv *publisher.Advisory) error {
		var level heat.RiskLevel
		if err := level.UnmarshalText([]byte(adv.RiskLevel)); err != nil {
			return err
		}

		attrs := []any{
			"location", adv.Location,
			"risk", adv.RiskLevel,
			"heat_index_c", adv.HeatIndexC,
			"generated_at", adv.GeneratedAt,
		}
		if adv.Report != nil && adv.Report.Today.Best != nil {
			attrs = append(attrs,
				"best_start", adv.Report.Today.Best.Start.Format("15:04"),
				"best_end", adv.Report.Today.Best.End.Format("15:04"))
		}

		if level >= heat.RiskRisky {
			logger.Warn("heat alert", attrs...)
		} else {
			logger.Info("advisory received", attrs...)
		}
		return nil
	}
}
