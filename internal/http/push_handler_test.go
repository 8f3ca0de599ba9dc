package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timelog/internal/schedulers"
	schedulermocks "timelog/internal/schedulers/mocks"
	"timelog/internal/shared/svcerrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPushHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPushJob := schedulermocks.NewMockMetricsPushJob(ctrl)
	handler := NewPushHandler(mockPushJob)

	checkpoint := time.Date(2019, 5, 1, 12, 5, 0, 0, time.UTC)
	mockPushJob.EXPECT().RunOnce(gomock.Any()).Return(&schedulers.PushResult{
		RunID:       "push-01J",
		Checkpoint:  checkpoint,
		RecordCount: 2,
		Metrics: schedulers.ResponseTimeMetrics{
			Average: decimal.RequireFromString("0.2"),
			Max:     decimal.RequireFromString("0.3"),
		},
	}, nil)

	rr := httptest.NewRecorder()
	require.NoError(t, handler.Handle(rr, httptest.NewRequest(http.MethodPost, "/push", nil)))
	assert.Equal(t, http.StatusOK, rr.Code)

	var body PushResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, PushResponse{
		RunID:                   "push-01J",
		Checkpoint:              checkpoint,
		RecordCount:             2,
		AveragePageResponseTime: "0.2",
		MaxPageResponseTime:     "0.3",
	}, body)
}

func TestPushHandler_Handle_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPushJob := schedulermocks.NewMockMetricsPushJob(ctrl)
	handler := NewPushHandler(mockPushJob)

	expectedErr := svcerrors.NewResourceConflictError("PSH_1000", "push already running", nil)
	mockPushJob.EXPECT().RunOnce(gomock.Any()).Return(nil, expectedErr)

	err := handler.Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/push", nil))
	assert.Equal(t, expectedErr, err)
}
