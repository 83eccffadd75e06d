package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runadvisor/internal/advisor"
	"runadvisor/internal/config"
	"runadvisor/internal/logging"
	"runadvisor/internal/models"
	"runadvisor/internal/publisher"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
)

type assessor interface {
	Assess(ctx context.Context, loc models.Location, opts ...advisor.AssessOption) (*advisor.Report, error)
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config")
	interval := flag.Duration("interval", 0, "repeat collection at this interval until interrupted (0 runs once)")
	flag.Parse()

	if _, err := config.Load(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.Get()

	if len(cfg.Locations) == 0 {
		log.Fatalf("No locations configured in %s", *configPath)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	pub := publisher.FromEnv(logger)
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := advisor.FromConfig(cfg, logger)

	if *interval > 0 {
		logger.Info("collector running, press Ctrl+C to stop", "interval", *interval)
		collectEvery(ctx, clockwork.NewRealClock(), *interval, func() {
			published, failed := collect(ctx, a, pub, cfg.Locations, logger)
			logger.Info("collection round completed", "published", published, "failed", failed)
		})
		logger.Info("shutting down collector")
		return 0
	}

	published, failed := collect(ctx, a, pub, cfg.Locations, logger)
	logger.Info("advisory collection completed", "published", published, "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// collectEvery runs round immediately and then on every tick until ctx is canceled
func collectEvery(ctx context.Context, clock clockwork.Clock, interval time.Duration, round func()) {
	round()

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			round()
		}
	}
}

// collect assesses every location concurrently and publishes each report
func collect(ctx context.Context, a assessor, pub publisher.Publisher, locations []models.Location, logger *slog.Logger) (published, failed int) {
	var ok, bad atomic.Int64
	var wg sync.WaitGroup

	for _, location := range locations {
		wg.Add(1)
		go func(loc models.Location) {
			defer wg.Done()

			report, err := a.Assess(ctx, loc)
			if err != nil {
				logger.Error("failed to assess location", "location", loc.Name, "error", err)
				bad.Add(1)
				return
			}

			if err := pub.Publish(ctx, report); err != nil {
				logger.Error("failed to publish advisory", "location", loc.Name, "error", err)
				bad.Add(1)
				return
			}

			logger.Info("published advisory",
				"location", loc.Name,
				"risk", report.Current.Risk.Level.String(),
				"heat_index_c", report.Current.HeatIndex.HeatIndexC)
			ok.Add(1)
		}(location)
	}

	wg.Wait()
	return int(ok.Load()), int(bad.Load())
}
