package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"timelog/internal/analyzers"
	"timelog/internal/models"
	"timelog/internal/reports"
)

const (
	paramSince   = "since"
	paramResolve = "resolve"
	paramFormat  = "format"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type reportHandler struct {
	analysisService analyzers.AnalysisService
	logFile         string
	resolveNames    bool
}

// NewReportHandler serves reports over logFile. resolveNames is the default for the resolve parameter.
func NewReportHandler(analysisService analyzers.AnalysisService, logFile string, resolveNames bool) AppHttpHandler {
	return &reportHandler{
		analysisService: analysisService,
		logFile:         logFile,
		resolveNames:    resolveNames,
	}
}

// Handle processes GET /report?since=&resolve=&format= requests.
func (h *reportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	opts, format, err := h.parseQuery(r)
	if err != nil {
		return err
	}

	result, err := h.analysisService.AnalyzeFile(r.Context(), h.logFile, opts)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := reports.Render(&body, format, reports.BuildReport(result)); err != nil {
		return err
	}

	if format == reports.FormatTable {
		w.Header().Set(headerContentType, contentTypeText)
	} else {
		w.Header().Set(headerContentType, contentTypeJSON)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
	return nil
}

func (h *reportHandler) parseQuery(r *http.Request) (analyzers.AnalyzeOptions, string, error) {
	opts := analyzers.AnalyzeOptions{ResolveNames: h.resolveNames}

	windowStart, err := models.ParseWindowStart(queryParam(r, paramSince))
	if err != nil {
		return opts, "", errInvalidReportQuery(err.Error(), err)
	}
	opts.WindowStart = windowStart

	if v := queryParam(r, paramResolve); v != "" {
		resolve, err := strconv.ParseBool(v)
		if err != nil {
			return opts, "", errInvalidReportQuery(fmt.Sprintf("invalid %s: %q", paramResolve, v), err)
		}
		opts.ResolveNames = resolve
	}

	format := queryParam(r, paramFormat)
	switch format {
	case "":
		format = reports.FormatJSON
	case reports.FormatJSON, reports.FormatTable:
	default:
		return opts, "", errInvalidReportQuery(fmt.Sprintf("unsupported %s: %q", paramFormat, format), nil)
	}
	return opts, format, nil
}
