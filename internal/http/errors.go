package http

import (
	"timelog/internal/shared/svcerrors"
)

// Report API errors
const (
	codeInvalidReportQuery = "RPT_1000"
)

func errInvalidReportQuery(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidReportQuery, msg, cause)
}
