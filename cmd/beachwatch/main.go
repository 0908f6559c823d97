// Command beachwatch fetches NSW Beachwatch water-quality sites and prints
// them as JSON or a table, optionally publishing the snapshot to Kafka.
//
// Usage:
//
//	beachwatch [-format json|table] [-publish] [site name ...]
//
// With no site names every monitored site is returned. Configuration comes
// from the environment (see internal/config). Log records are written to
// stdout alongside the output; set LOG_LEVEL=warn when piping -publish runs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/beachwatch/internal/adapter/beachwatch"
	kafkaadapter "github.com/couchcryptid/beachwatch/internal/adapter/kafka"
	"github.com/couchcryptid/beachwatch/internal/config"
	"github.com/couchcryptid/beachwatch/internal/domain"
	"github.com/couchcryptid/beachwatch/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitUsage      = 2
	exitUnresolved = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("beachwatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "json", "output format: json or table")
	publish := fs.Bool("publish", false, "publish the snapshot to KAFKA_TOPIC")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *format != "json" && *format != "table" {
		fmt.Fprintf(stderr, "unknown -format %q\n", *format)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitError
	}
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	// Nothing scrapes a one-shot run; keep the collectors off the default registry.
	metrics := observability.NewMetricsWith(prometheus.NewRegistry())

	names := fs.Args()
	client := beachwatch.NewClient(cfg.BeachwatchURL, cfg.UserAgent, cfg.RequestTimeout, metrics, logger)
	sites, err := client.Fetch(ctx, names...)
	if err != nil {
		var unresolved *domain.UnresolvedSiteError
		if errors.As(err, &unresolved) {
			fmt.Fprintln(stderr, err)
			return exitUnresolved
		}
		logger.Error("fetch failed", "error", err)
		return exitError
	}

	snap := domain.NewSnapshot(names, sites)
	if err := render(stdout, *format, snap); err != nil {
		logger.Error("write output", "error", err)
		return exitError
	}

	if *publish {
		if err := publishSnapshot(ctx, cfg, metrics, logger, snap); err != nil {
			logger.Error("publish failed", "error", err)
			return exitError
		}
	}
	return exitOK
}

func publishSnapshot(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger, snap domain.Snapshot) error {
	if err := cfg.ValidateKafka(); err != nil {
		return err
	}
	writer := kafkaadapter.NewWriter(cfg, metrics, logger)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()
	return writer.Publish(ctx, snap)
}

func render(w io.Writer, format string, snap domain.Snapshot) error {
	if format == "table" {
		_, err := io.WriteString(w, renderTable(snap.Sites)+"\n")
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
