package schedulers

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"timelog/internal/shared/loggers"
	"timelog/internal/shared/svcerrors"
)

//go:generate mockgen -source=push_scheduler.go -destination=./mocks/push_scheduler_mock.go -package=mocks
type PushScheduler interface {
	Start(ctx context.Context)
	Stop()
}

type pushScheduler struct {
	job      MetricsPushJob
	interval time.Duration

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewPushScheduler(job MetricsPushJob, interval time.Duration, logger loggers.Logger) PushScheduler {
	return &pushScheduler{
		job:      job,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Start runs the job every interval on one goroutine. The first run happens after one interval.
func (s *pushScheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.runSafely(ctx)
			}
		}
	}()
}

// Stop waits for an in-flight run to finish (best called during app shutdown).
func (s *pushScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *pushScheduler) runSafely(ctx context.Context) {
	ctx = s.logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("push scheduler panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricPushRunsTotal.WithLabelValues(svcErr.Code).Inc()
		}
	}()

	s.job.Run(ctx)
}
