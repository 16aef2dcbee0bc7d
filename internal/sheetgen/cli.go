package sheetgen

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ryanmford/apexspeedrun/pkg/logger"
)

// Run executes the generator: build the dataset, then either write files or
// serve them over HTTP, probing the dashboard when asked.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}

	ds, err := Generate(ctx, cfg, stats)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if cfg.OutputDir != "" {
		if err := WriteFiles(ctx, cfg.OutputDir, ds); err != nil {
			return fmt.Errorf("writing sheets failed: %w", err)
		}
		finish(stats)
		return nil
	}

	if cfg.ProbeURL != "" {
		go func() {
			// Give the server a moment to bind before probing.
			time.Sleep(time.Second)
			if err := Probe(ctx, cfg); err != nil {
				logger.Get().Warn(ctx, "dashboard probe failed", logger.Error(err))
			}
		}()
	}

	err = Serve(ctx, cfg, ds)
	finish(stats)
	return err
}

func finish(stats *Stats) {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Info(context.Background(), "generator finished",
		logger.Int("athletes", stats.AthletesGenerated),
		logger.Int("courses", stats.CoursesGenerated),
		logger.Int("setters", stats.SettersGenerated),
		logger.Int("runs", stats.RunsGenerated),
		logger.Int("dirtyRows", stats.DirtyRows),
		logger.Int("openSeasonRows", stats.OpenSeasonRows),
		logger.String("duration", stats.Duration.String()))
}

// ShowHelp prints usage information for the sheet generator.
func ShowHelp() {
	os.Stdout.WriteString(`Apex Speed Run Sheet Generator
==============================

Generates synthetic sheet exports for local testing of the dashboard.

Usage:
  go run cmd/sheetgen/main.go [options]

Options:
  -addr string
        Listen address for serving sheets (default ":9081")
  -athletes int
        Number of athletes per gender (default 40)
  -courses int
        Number of courses (default 15)
  -runs int
        Number of live feed rows (default 2000)
  -seed int
        Random seed for reproducible output (default 1)
  -out string
        Write sheets as CSV files to this directory instead of serving
  -probe string
        Base URL of a running dashboard to check after serving starts
  -timeout duration
        HTTP request timeout for probes (default 30s)
  -help
        Show this help message

Examples:
  # Serve sheets on the default port
  go run cmd/sheetgen/main.go

  # Write sheets to disk
  go run cmd/sheetgen/main.go -out ./testdata/sheets

  # Serve and verify a dashboard pointed at this generator
  go run cmd/sheetgen/main.go -probe http://localhost:9080
`)
}
