package schedulers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"timelog/internal/analyzers"
	"timelog/internal/models"
	"timelog/internal/shared/loggers"
	"timelog/internal/shared/metrics"
	"timelog/internal/shared/svcerrors"
	"timelog/internal/shared/ulid"
	"timelog/internal/stores"
)

const (
	LockName       = "CLOUDWATCH_TIMELOG_RUNNING"
	CheckpointName = "CLOUDWATCH_TIMELOG_LAST_RUNTIME"

	responseTimePlaces = 3
)

var noTraffic = decimal.NewFromInt(-1)

// PushResult describes one successful push.
type PushResult struct {
	RunID       string
	WindowStart *time.Time
	Checkpoint  time.Time
	RecordCount int
	Metrics     ResponseTimeMetrics
}

//go:generate mockgen -source=metrics_push_job.go -destination=./mocks/metrics_push_job_mock.go -package=mocks
type MetricsPushJob interface {
	// Run pushes once and logs the outcome; it never fails. Used by the scheduler.
	Run(ctx context.Context)
	// RunOnce pushes once and reports the outcome. A held lock is PSH_1000.
	RunOnce(ctx context.Context) (*PushResult, error)
}

type metricsPushJob struct {
	logFile         string
	analysisService analyzers.AnalysisService
	locker          stores.Locker
	checkpointStore stores.CheckpointStore
	publisher       MetricsPublisher
	now             func() time.Time
}

func NewMetricsPushJob(logFile string, analysisService analyzers.AnalysisService, locker stores.Locker, checkpointStore stores.CheckpointStore, publisher MetricsPublisher) MetricsPushJob {
	return &metricsPushJob{
		logFile:         logFile,
		analysisService: analysisService,
		locker:          locker,
		checkpointStore: checkpointStore,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (j *metricsPushJob) Run(ctx context.Context) {
	result, err := j.RunOnce(ctx)
	logger := loggers.Ctx(ctx)

	if err == nil {
		logger.Info().
			Str(loggers.FieldRunID, result.RunID).
			Int(loggers.FieldEntryCount, result.RecordCount).
			Str(MetricAveragePageResponseTime, result.Metrics.Average.String()).
			Str(MetricMaxPageResponseTime, result.Metrics.Max.String()).
			Msg("pushed response time metrics")
		return
	}

	if errors.Is(err, analyzers.ErrLogFileNotFound) {
		logger.Warn().Err(err).Str(loggers.FieldLogFile, j.logFile).Msg("timelog file not found")
		return
	}

	code := ""
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
		if code == codePushAlreadyRunning {
			logger.Debug().Str(loggers.FieldLockName, LockName).Msg("skipped push, previous run still holds the lock")
			return
		}
	}
	logger.Error().Err(err).Str(loggers.FieldErrorCode, code).Msg("failed to push response time metrics")
}

func (j *metricsPushJob) RunOnce(ctx context.Context) (*PushResult, error) {
	result, err := j.runOnce(ctx)

	code := metrics.ValueNoError
	if err != nil {
		code = svcerrors.NewInternalErrorUndefined(err).Code
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
	}
	metricPushRunsTotal.WithLabelValues(code).Inc()
	return result, err
}

func (j *metricsPushJob) runOnce(ctx context.Context) (_ *PushResult, err error) {
	runID := ulid.NewRunID("push")
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldRunID, runID).Logger()
	ctx = logger.WithContext(ctx)

	acquired, err := j.locker.Acquire(ctx, LockName)
	if err != nil {
		return nil, errInternalLockFailed(err)
	}
	if !acquired {
		return nil, errPushAlreadyRunning(LockName)
	}
	defer func() {
		// release even when ctx was canceled mid-run
		if releaseErr := j.locker.Release(context.WithoutCancel(ctx), LockName); releaseErr != nil {
			logger.Error().Err(releaseErr).Str(loggers.FieldLockName, LockName).Msg("failed to release lock")
			if err == nil {
				err = errInternalLockFailed(releaseErr)
			}
		}
	}()

	windowStart, err := j.checkpointStore.Get(ctx)
	if err != nil {
		return nil, errInternalCheckpointFailed(err)
	}
	if windowStart != nil {
		logger.Debug().Time(loggers.FieldWindowStart, *windowStart).Msg("resuming from checkpoint")
	}

	aggregate, err := j.analysisService.AnalyzeFile(ctx, j.logFile, analyzers.AnalyzeOptions{
		ResolveNames: true,
		WindowStart:  windowStart,
	})
	if err != nil {
		return nil, err
	}

	responseTimes := Summarize(aggregate)
	if err := j.publisher.Publish(ctx, responseTimes); err != nil {
		return nil, errInternalPublishFailed(err)
	}

	checkpoint := j.now().UTC()
	if err := j.checkpointStore.Set(ctx, checkpoint); err != nil {
		return nil, errInternalCheckpointFailed(fmt.Errorf("metrics were pushed but checkpoint was not advanced: %w", err))
	}

	return &PushResult{
		RunID:       runID,
		WindowStart: windowStart,
		Checkpoint:  checkpoint,
		RecordCount: aggregate.RecordCount(),
		Metrics:     responseTimes,
	}, nil
}

// Summarize flattens every response time sample across keys and returns their average and
// maximum, rounded half-to-even to the millisecond. Both are -1 when there is no sample.
func Summarize(result *models.AggregateResult) ResponseTimeMetrics {
	var times []float64
	if result != nil {
		times = result.ResponseTimes()
	}
	if len(times) == 0 {
		return ResponseTimeMetrics{Average: noTraffic, Max: noTraffic}
	}

	sum := decimal.Zero
	maximum := decimal.NewFromFloat(times[0])
	for _, t := range times {
		d := decimal.NewFromFloat(t)
		sum = sum.Add(d)
		if d.GreaterThan(maximum) {
			maximum = d
		}
	}
	average := sum.Div(decimal.NewFromInt(int64(len(times))))

	return ResponseTimeMetrics{
		Average: average.RoundBank(responseTimePlaces),
		Max:     maximum.RoundBank(responseTimePlaces),
	}
}
