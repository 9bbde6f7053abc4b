package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"smart-home-mock/config"
	"smart-home-mock/internal/application"
	"smart-home-mock/internal/catalog"
	"smart-home-mock/internal/infra"
	"smart-home-mock/internal/infra/audit"
	"smart-home-mock/internal/infra/httpapi"
	"smart-home-mock/internal/infra/mqtt"
	"smart-home-mock/internal/infra/telemetry"
	"smart-home-mock/internal/validation"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	eventPath := flag.String("event", "", `handle one request read from this file ("-" for stdin) and exit`)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *eventPath != "" {
		// stdout carries the response in one-shot mode.
		logger := setupLogger(cfg.Log, os.Stderr)
		if err := invokeFile(ctx, cfg, *eventPath, os.Stdout, logger); err != nil {
			logger.Error("invoking event", "error", err)
			os.Exit(1)
		}
		return
	}

	logger := setupLogger(cfg.Log, os.Stdout)
	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("skill mock error", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	var (
		recorders application.Recorders
		history   httpapi.InvocationLister
	)

	if cfg.Audit.Enabled {
		store, err := audit.Open(ctx, cfg.Audit.Path, infra.DefaultRetryConfig())
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer store.Close()
		recorders = append(recorders, store)
		history = store
		logger.Info("audit log enabled", "path", store.Path())
	}

	tel, err := telemetry.Connect(ctx, telemetry.Config{
		Enabled:       cfg.InfluxDB.Enabled,
		URL:           cfg.InfluxDB.URL,
		Token:         cfg.InfluxDB.Token,
		Org:           cfg.InfluxDB.Org,
		Bucket:        cfg.InfluxDB.Bucket,
		BatchSize:     cfg.InfluxDB.BatchSize,
		FlushInterval: cfg.InfluxDB.FlushInterval,
	}, logger)
	switch {
	case err == nil:
		defer tel.Close()
		recorders = append(recorders, tel)
		logger.Info("telemetry enabled", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	case errors.Is(err, telemetry.ErrDisabled):
	default:
		logger.Warn("telemetry unavailable, continuing without it", "error", err)
	}

	var recorder application.Recorder
	if len(recorders) > 0 {
		recorder = recorders
	}

	handler := application.NewHandler(cat, validation.New(), recorder, logger)

	server := httpapi.NewServer(httpapi.Config{
		Addr:       cfg.Server.Addr,
		RateLimit:  cfg.Server.RateLimit.Requests,
		RateWindow: cfg.Server.RateLimit.WindowDuration(),
	}, handler, cat, history, logger)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting HTTP server: %w", err)
	}
	defer server.Stop()

	if cfg.MQTT.Enabled {
		bridge := mqtt.NewBridge(mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Prefix:   cfg.MQTT.TopicPrefix,
			QoS:      cfg.MQTT.QoS,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, handler, logger)
		if err := bridge.Start(ctx); err != nil {
			return fmt.Errorf("starting MQTT bridge: %w", err)
		}
		defer bridge.Stop()
	}

	logger.Info("starting smart home skill mock",
		"addr", cfg.Server.Addr,
		"appliances", cat.Len(),
		"mqtt", cfg.MQTT.Enabled,
		"audit", cfg.Audit.Enabled,
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", "skillmock"),
		slog.String("version", version),
	)
}
