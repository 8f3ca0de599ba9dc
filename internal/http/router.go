package http

import (
	"net/http"

	"timelog/internal/analyzers"
	"timelog/internal/schedulers"
	"timelog/internal/shared/configs"
	"timelog/internal/shared/loggers"
	"timelog/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router. pushJob may be nil when pushing is disabled;
// POST /push is then not routed.
func NewRouter(cfg configs.TimelogConfig, analysisService analyzers.AnalysisService, pushJob schedulers.MetricsPushJob, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	reportHandler := NewReportHandler(analysisService, cfg.LogFile, cfg.ResolveNames)

	router.Get("/report", errorHandlingAdapter(reportHandler))
	if pushJob != nil {
		router.Post("/push", errorHandlingAdapter(NewPushHandler(pushJob)))
	}
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
