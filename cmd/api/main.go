package main

import (
	"net/http"
	"os"
	"time"

	"circular_platform/pkg/api/config"
	"circular_platform/pkg/api/model"
	"circular_platform/pkg/core/settings"

	"github.com/phuslu/log"
)

func main() {
	cfg, err := settings.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	settings.SetupLogger(cfg.Server.LogLevel)

	mux := http.NewServeMux()

	// Config endpoints
	configHandler := config.NewHandler(cfg.Organization, cfg.Targets)
	mux.HandleFunc("/api/config", configHandler.HandleConfig)

	// Model, export, chart and report endpoints
	modelHandler := model.NewHandler(cfg.Targets)
	modelHandler.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Str("organization", cfg.Organization).Msg("API server starting")
	log.Info().Msg("  - GET  /api/config")
	log.Info().Msg("  - POST /api/model/{snapshot,projection,kpi,impact}")
	log.Info().Msg("  - POST /api/export/{snapshot.csv,proforma.csv}")
	log.Info().Msg("  - POST /api/charts/{flow,proforma}")
	log.Info().Msg("  - POST /api/report")

	if err := srv.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("server failed to start")
		os.Exit(1)
	}
}
