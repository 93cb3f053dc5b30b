package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	lib "github.com/senan-sh/ayna-analytics"
	"github.com/senan-sh/ayna-analytics/analytics"
	"github.com/senan-sh/ayna-analytics/config"
	"github.com/senan-sh/ayna-analytics/worker"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "", "config file path (default: config.yml)")
	port := flag.Int("port", 0, "listen port (overrides config)")
	csvURL := flag.String("csv", "", "check-in CSV URL (overrides config)")
	logLevel := flag.String("log", "info", "log level: debug|info|warn|error")
	flag.Parse()

	logger := lib.NewLogger(*logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath != "" {
			logger.Error("config load failed", "path", *configPath, "error", err.Error())
			os.Exit(1)
		}
		logger.Warn("no config file, using defaults", "error", err.Error())
		cfg = config.Default()
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *csvURL != "" {
		cfg.Analytics.CSVURL = *csvURL
	}

	switch *mode {
	case "serve":
		serve(cfg, logger)
	case "oneshot":
		if err := oneshot(cfg, logger); err != nil {
			logger.Error("oneshot failed", "error", err.Error())
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func serve(cfg config.AppConfig, logger *slog.Logger) {
	svc := lib.NewService(cfg, logger)

	refresher := lib.NewRefresher(func(ctx context.Context) {
		features, origin := svc.Source().LoadRouteFeatures(ctx)
		logger.Info("route refresh complete", "features", len(features), "source", string(origin))
	}, logger)
	refresher.Reset(time.Duration(cfg.Refresh.RouteIntervalMS) * time.Millisecond)
	defer refresher.Stop()

	svc.Start()
	svc.HandleGracefulShutdown()
}

// oneshot parses the configured CSV through the background worker, prints the
// chart summary, then dumps the current route features.
func oneshot(cfg config.AppConfig, logger *slog.Logger) error {
	if cfg.Analytics.CSVURL != "" {
		parser := worker.NewParser(&http.Client{Timeout: 30 * time.Second}, logger)
		defer parser.Close()
		parser.Submit(worker.Request{Type: worker.TypeParseCSV, CSVURL: cfg.Analytics.CSVURL})

		resp := <-parser.Results()
		if resp.Type == worker.TypeParseError {
			return fmt.Errorf("csv parse: %s", resp.Message)
		}
		summary := analytics.Summarize(resp.Payload)
		if err := printJSON(map[string]any{"dataset": resp.Payload, "summary": summary}); err != nil {
			return err
		}
	} else {
		logger.Warn("no CSV URL configured, skipping analytics summary")
	}

	svc := lib.NewService(cfg, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	features, origin := svc.Source().LoadRouteFeatures(ctx)
	logger.Info("routes loaded", "features", len(features), "source", string(origin))
	return printJSON(map[string]any{"source": origin, "features": features})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
