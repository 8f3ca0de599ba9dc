package analyzers

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"timelog/internal/aggregators"
	"timelog/internal/filters"
	"timelog/internal/models"
	"timelog/internal/parsers"
	"timelog/internal/resolvers"
	"timelog/internal/shared/loggers"
	"timelog/internal/shared/metrics"
	"timelog/internal/shared/svcerrors"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineBytes      = 16 * 1024 * 1024

	// ctx is polled every cancelCheckInterval lines
	cancelCheckInterval = 1024
)

// AnalyzeOptions configure a single run.
type AnalyzeOptions struct {
	ResolveNames bool
	// WindowStart, when set, skips records older than it.
	WindowStart *time.Time
	// Progress receives a progress bar when non-nil. The file is read twice: once to count lines.
	Progress io.Writer
}

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// AnalyzeFile folds every qualifying record of the log file at path. On any error the
	// result is nil; a partially read file is never returned as if it were complete.
	AnalyzeFile(ctx context.Context, path string, opts AnalyzeOptions) (*models.AggregateResult, error)
}

type analysisService struct {
	lineParser       parsers.LineParser
	pathFilter       filters.PathFilter
	endpointResolver resolvers.EndpointResolver
}

// NewAnalysisService creates a service sharing pathFilter and endpointResolver across runs.
// endpointResolver may be nil if no run resolves names.
func NewAnalysisService(lineParser parsers.LineParser, pathFilter filters.PathFilter, endpointResolver resolvers.EndpointResolver) AnalysisService {
	return &analysisService{
		lineParser:       lineParser,
		pathFilter:       pathFilter,
		endpointResolver: endpointResolver,
	}
}

func (s *analysisService) AnalyzeFile(ctx context.Context, path string, opts AnalyzeOptions) (*models.AggregateResult, error) {
	startedAt := time.Now()
	result, err := s.analyzeFile(ctx, path, opts)

	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricRunsTotal.WithLabelValues(code).Inc()
	metricRunDurationSeconds.WithLabelValues(code).Observe(time.Since(startedAt).Seconds())

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *analysisService) analyzeFile(ctx context.Context, path string, opts AnalyzeOptions) (*models.AggregateResult, error) {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldLogFile, path).Logger()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errLogFileNotFound(path, err)
		}
		return nil, errInternalLogReadFailed(err)
	}
	defer f.Close()

	var progress *progressBar
	if opts.Progress != nil {
		total, err := parsers.CountLines(f)
		if err != nil {
			return nil, errInternalLogReadFailed(err)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, errInternalLogReadFailed(err)
		}
		progress = newProgressBar(opts.Progress, total)
		defer progress.Done()
	}

	aggregator, err := aggregators.NewAggregator(s.pathFilter, s.endpointResolver, aggregators.Options{
		ResolveNames: opts.ResolveNames,
		WindowStart:  opts.WindowStart,
	})
	if err != nil {
		return nil, errInternalAggregationFailed(err)
	}

	logger.Debug().Bool("resolve_names", opts.ResolveNames).Msg("started analyzing log file")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineBytes)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if lineNumber%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errInternalAnalysisCanceled(err)
			}
		}

		record, err := s.lineParser.Parse(scanner.Text())
		if err != nil {
			var malformed *parsers.MalformedLineError
			if errors.As(err, &malformed) {
				malformed.LineNumber = lineNumber
				return nil, errMalformedLine(malformed)
			}
			return nil, errInternalLogReadFailed(err)
		}

		outcome, err := aggregator.Ingest(record)
		if err != nil {
			return nil, errInternalAggregationFailed(err)
		}
		if outcome == aggregators.OutcomeUnroutable {
			logger.Debug().
				Str(loggers.FieldRequestPath, record.Path).
				Str(loggers.FieldTimestamp, record.PreciseTimestamp().Format(time.RFC3339Nano)).
				Msg("dropped unroutable path")
		}

		if progress != nil {
			progress.Update(lineNumber)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errInternalLogReadFailed(err)
	}

	result := aggregator.Result()
	logger.Debug().
		Int(loggers.FieldLineNumber, lineNumber).
		Int(loggers.FieldEntryCount, len(result.Entries)).
		Msg("finished analyzing log file")
	return result, nil
}
