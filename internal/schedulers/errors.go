package schedulers

import (
	"fmt"

	"timelog/internal/shared/svcerrors"
)

// MetricsPushJob errors
const (
	codePushAlreadyRunning = "PSH_1000"

	codeInternalLockFailed       = "PSH_9000"
	codeInternalCheckpointFailed = "PSH_9001"
	codeInternalPublishFailed    = "PSH_9002"
)

func errPushAlreadyRunning(lockName string) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codePushAlreadyRunning, fmt.Sprintf("push already running: lock %s is held", lockName), nil)
}

func errInternalLockFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLockFailed, fmt.Errorf("lockFailed: %w", cause))
}

func errInternalCheckpointFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCheckpointFailed, fmt.Errorf("checkpointFailed: %w", cause))
}

func errInternalPublishFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPublishFailed, fmt.Errorf("publishFailed: %w", cause))
}
