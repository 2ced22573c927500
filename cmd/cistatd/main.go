// cistatd serves confidence-interval computations over HTTP, persists
// named accumulators in bbolt, and ingests sample files from a drop
// directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/yasi-python/cistats/internal/ingest"
	"github.com/yasi-python/cistats/pkg/api"
	"github.com/yasi-python/cistats/pkg/config"
	"github.com/yasi-python/cistats/pkg/logger"
	"github.com/yasi-python/cistats/pkg/metrics"
	"github.com/yasi-python/cistats/pkg/storage"
)

func main() {
	cfgPath := "config.yaml"
	if len(os.Args) > 1 && os.Args[1] != "" {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("config_load_error:", err.Error())
		os.Exit(2)
	}
	log := logger.New(cfg.Service.LogLevel)
	metrics.MustRegister()

	db, err := storage.Open(filepath.Join(cfg.Service.DataDir, "cistats.db"))
	if err != nil {
		log.Error("db_open", "err", err.Error())
		os.Exit(2)
	}
	defer db.Close()

	defaults, err := cfg.Confidence()
	if err != nil {
		log.Error("bad_defaults", "err", err.Error())
		os.Exit(2)
	}

	apiSrv := api.New(db, defaults, cfg.Service.MetricsPath, cfg.Service.HealthzPath)
	go func() {
		if err := apiSrv.Start(cfg.Service.HTTPListen); err != nil {
			log.Error("api_start", "err", err.Error())
		}
	}()

	runner, err := ingest.New(cfg.Ingest, log, db)
	if err != nil {
		log.Error("ingest_init", "err", err.Error())
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	log.Info("cistatd_start", "listen", cfg.Service.HTTPListen, "ingest_dir", cfg.Ingest.Dir)
	runner.Run(ctx, cfg.IngestInterval())
}
