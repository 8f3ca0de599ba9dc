package http

import (
	"net/http"
	"time"

	"timelog/internal/schedulers"
)

// PushResponse is the body of a successful POST /push.
type PushResponse struct {
	RunID                   string     `json:"runId"`
	WindowStart             *time.Time `json:"windowStart"`
	Checkpoint              time.Time  `json:"checkpoint"`
	RecordCount             int        `json:"recordCount"`
	AveragePageResponseTime string     `json:"averagePageResponseTime"`
	MaxPageResponseTime     string     `json:"maxPageResponseTime"`
}

type pushHandler struct {
	pushJob schedulers.MetricsPushJob
}

func NewPushHandler(pushJob schedulers.MetricsPushJob) AppHttpHandler {
	return &pushHandler{pushJob: pushJob}
}

// Handle processes POST /push requests: one push, outside the regular schedule.
func (h *pushHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.pushJob.RunOnce(r.Context())
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, PushResponse{
		RunID:                   result.RunID,
		WindowStart:             result.WindowStart,
		Checkpoint:              result.Checkpoint,
		RecordCount:             result.RecordCount,
		AveragePageResponseTime: result.Metrics.Average.String(),
		MaxPageResponseTime:     result.Metrics.Max.String(),
	})
	return nil
}
