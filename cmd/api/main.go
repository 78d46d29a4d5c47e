package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	apiconfig "energy_prospectus/pkg/api/config"
	"energy_prospectus/pkg/api/site"
	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/dataset"
	"energy_prospectus/pkg/core/logging"
	"energy_prospectus/pkg/core/page"
	"energy_prospectus/pkg/core/scenario"
)

func main() {
	configPath := flag.String("config", "site.yaml", "path to the site configuration")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// 1. Configuration (site.yaml, .env, SITE_* variables)
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// 2. Datasets and the page, built once
	reg, err := dataset.LoadDir(cfg.Site.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	for _, w := range reg.Report().Warnings() {
		logger.Warn("dataset", zap.String("subject", w.Subject), zap.String("issue", w.Message))
	}

	built, err := page.Build(cfg, reg, logger)
	if err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}
	table, err := scenario.NewTable(reg.Scenarios())
	if err != nil {
		return err
	}

	// 3. Serve until interrupted
	handler := site.NewHandler(built, table, apiconfig.NewHandler(cfg, table), logger.Named("http"))
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("API server starting",
		zap.String("addr", ln.Addr().String()),
		zap.Strings("routes", []string{"/", "/assets/*", "/charts/financial-{key}.svg", "/charts/roadmap.svg", "/healthz", "/api/config"}))
	return site.Serve(ctx, ln, handler.Router(), logger)
}
