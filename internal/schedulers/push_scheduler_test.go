package schedulers_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"timelog/internal/schedulers"
	schedulermocks "timelog/internal/schedulers/mocks"
	"timelog/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPushScheduler_RunsJobUntilStopped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	job := schedulermocks.NewMockMetricsPushJob(ctrl)

	var runs atomic.Int32
	job.EXPECT().Run(gomock.Any()).Do(func(ctx context.Context) { runs.Add(1) }).MinTimes(2)

	scheduler := schedulers.NewPushScheduler(job, 5*time.Millisecond, loggers.Nop())
	scheduler.Start(context.Background())

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, time.Millisecond)
	scheduler.Stop()

	stoppedAt := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stoppedAt, runs.Load(), "no run after Stop")

	scheduler.Stop()
}

func TestPushScheduler_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	job := schedulermocks.NewMockMetricsPushJob(ctrl)

	var runs atomic.Int32
	job.EXPECT().Run(gomock.Any()).Do(func(ctx context.Context) {
		if runs.Add(1) == 1 {
			panic("boom")
		}
	}).MinTimes(2)

	scheduler := schedulers.NewPushScheduler(job, 5*time.Millisecond, loggers.Nop())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestPushScheduler_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	job := schedulermocks.NewMockMetricsPushJob(ctrl)
	job.EXPECT().Run(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	scheduler := schedulers.NewPushScheduler(job, time.Millisecond, loggers.Nop())
	scheduler.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancel")
	}
}
