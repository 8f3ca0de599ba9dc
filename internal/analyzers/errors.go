package analyzers

import (
	"errors"
	"fmt"

	"timelog/internal/parsers"
	"timelog/internal/shared/svcerrors"
)

// ErrLogFileNotFound is wrapped by the ANL_1001 error when the log file does not exist.
var ErrLogFileNotFound = errors.New("log file not found")

// AnalysisService errors
const (
	codeMalformedLine   = "ANL_1000"
	codeLogFileNotFound = "ANL_1001"

	codeInternalLogReadFailed     = "ANL_9000"
	codeInternalAggregationFailed = "ANL_9001"
	codeInternalAnalysisCanceled  = "ANL_9002"
)

// errMalformedLine aborts a run on the first line that does not match the grammar.
func errMalformedLine(cause *parsers.MalformedLineError) *svcerrors.ServiceError {
	return svcerrors.NewUnprocessableError(codeMalformedLine, fmt.Sprintf("malformed log line %d", cause.LineNumber), cause)
}

func errLogFileNotFound(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeLogFileNotFound, fmt.Sprintf("log file not found: %s", path), fmt.Errorf("%w: %w", ErrLogFileNotFound, cause))
}

func errInternalLogReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogReadFailed, fmt.Errorf("logReadFailed: %w", cause))
}

func errInternalAggregationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("aggregationFailed: %w", cause))
}

// errInternalAnalysisCanceled keeps context.Canceled/DeadlineExceeded reachable through errors.Is.
func errInternalAnalysisCanceled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAnalysisCanceled, fmt.Errorf("analysisCanceled: %w", cause))
}
