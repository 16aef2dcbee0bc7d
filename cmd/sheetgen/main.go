package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ryanmford/apexspeedrun/internal/sheetgen"
	"github.com/ryanmford/apexspeedrun/pkg/logger"
)

// Default configuration constants.
const (
	defaultAthletes = 40
	defaultCourses  = 15
	defaultRuns     = 2000
	defaultSeed     = 1
	defaultTimeout  = 30 * time.Second
)

func main() {
	var (
		addr       = flag.String("addr", ":9081", "Listen address for serving sheets")
		athletes   = flag.Int("athletes", defaultAthletes, "Number of athletes per gender")
		courses    = flag.Int("courses", defaultCourses, "Number of courses")
		runs       = flag.Int("runs", defaultRuns, "Number of live feed rows")
		seed       = flag.Int64("seed", defaultSeed, "Random seed for reproducible output")
		seasonTag  = flag.String("tag", "ASR OPEN 2026", "Event tag stamped on open-season rows")
		seasonYear = flag.String("year", "2026", "Current season year for course set dates")
		outputDir  = flag.String("out", "", "Write sheets as CSV files to this directory instead of serving")
		probeURL   = flag.String("probe", "", "Base URL of a running dashboard to check")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout for probes")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sheetgen.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &sheetgen.Config{
		Addr:       *addr,
		Athletes:   *athletes,
		Courses:    *courses,
		Runs:       *runs,
		Seed:       *seed,
		SeasonTag:  *seasonTag,
		SeasonYear: *seasonYear,
		OutputDir:  *outputDir,
		ProbeURL:   *probeURL,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := sheetgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("sheetgen failed: " + err.Error() + "\n")
		return
	}
}
