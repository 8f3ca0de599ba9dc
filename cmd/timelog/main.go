// Command timelog analyzes one timelog file and prints a per-endpoint report.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"timelog/internal/analyzers"
	"timelog/internal/app"
	"timelog/internal/models"
	"timelog/internal/reports"
	"timelog/internal/shared/configs"
	"timelog/internal/shared/loggers"
	"timelog/internal/shared/svcerrors"

	"github.com/spf13/pflag"
)

const (
	flagConfig     = "config"
	flagFile       = "file"
	flagSince      = "since"
	flagNoResolve  = "no-resolve"
	flagNoProgress = "no-progress"
	flagFormat     = "format"
	flagLogLevel   = "log-level"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("timelog", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String(flagConfig, "", "path to a YAML config file (routes, ignore_uris)")
	flags.String(flagFile, "", "timelog file to analyze (overrides timelog.log_file)")
	since := flags.String(flagSince, "", `skip records before this instant (RFC3339 or "2006-01-02 15:04:05", UTC)`)
	noResolve := flags.Bool(flagNoResolve, false, "group by raw path instead of resolved endpoint")
	noProgress := flags.Bool(flagNoProgress, false, "do not draw a progress bar")
	format := flags.String(flagFormat, reports.FormatTable, "output format: table or json")
	flags.String(flagLogLevel, "", "log level (overrides log.level)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := configs.LoadConfigWithFlags(*configPath, flags, map[string]string{
		"timelog.log_file": flagFile,
		"log.level":        flagLogLevel,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 2
	}
	if *noResolve {
		cfg.Timelog.ResolveNames = false
	}

	// stdout carries only the report
	logger, err := loggers.NewWithWriter(cfg.Log.Level, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 2
	}

	windowStart, err := models.ParseWindowStart(*since)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid --%s: %v\n", flagSince, err)
		return 2
	}
	if err := reports.ValidateFormat(*format); err != nil {
		fmt.Fprintf(stderr, "Invalid --%s: %v\n", flagFormat, err)
		return 2
	}
	if cfg.Timelog.ResolveNames && len(cfg.Routes) == 0 {
		logger.Warn().Msgf("no routes configured, every path is unroutable; use --%s to report raw paths", flagNoResolve)
	}

	analysisService, err := app.NewAnalysisService(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize analysis: %v\n", err)
		return 2
	}

	opts := analyzers.AnalyzeOptions{
		ResolveNames: cfg.Timelog.ResolveNames,
		WindowStart:  windowStart,
	}
	if !*noProgress && analyzers.IsTerminal(stderr) {
		opts.Progress = stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	result, err := analysisService.AnalyzeFile(ctx, cfg.Timelog.LogFile, opts)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	if err := reports.Render(stdout, *format, reports.BuildReport(result)); err != nil {
		fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
		return 1
	}
	return 0
}

// reportError prints err for a human; malformed lines are shown with their cause.
func reportError(stderr io.Writer, err error) {
	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok || svcErr.Cause == nil || svcErr.IsInternalError() {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(stderr, "Error: %v (%v)\n", svcErr, svcErr.Cause)
}
