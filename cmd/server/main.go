package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runadvisor/internal/advisor"
	"runadvisor/internal/config"
	"runadvisor/internal/logging"
	"runadvisor/internal/server"
	"syscall"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	a := advisor.FromConfig(cfg, logger)
	srv := server.NewServer(a, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", "addr", cfg.Server.Addr, "locations", len(cfg.Locations))
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server stopped")
}
