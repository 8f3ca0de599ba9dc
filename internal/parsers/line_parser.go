package parsers

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"timelog/internal/models"
)

// linePattern is the timelog grammar:
//
//	YYYY-MM-DD HH:MM:SS,mmm METHOD "PATH" (STATUS) RESPONSE_TIME (QUERY_COUNTq, QUERY_TIME)
//
// The path and status groups are greedy, the two timings are lazy; anything after the
// closing parenthesis is ignored.
var linePattern = regexp.MustCompile(
	`^([0-9]{4}-[0-9]{2}-[0-9]{2} [0-9:]{8}),([0-9]{3}) (` + methodAlternation() + `) "(.*)" \((.*)\) (.*?) \((\d+)q, (.*?)\)`,
)

func methodAlternation() string {
	names := make([]string, len(models.Methods))
	for i, m := range models.Methods {
		names[i] = regexp.QuoteMeta(string(m))
	}
	return strings.Join(names, "|")
}

var errNoMatch = errors.New("line does not match the timelog grammar")

type LineParser interface {
	// Parse extracts one LogRecord from a raw line. Failures are *MalformedLineError.
	Parse(line string) (*models.LogRecord, error)
}

type lineParser struct{}

func NewLineParser() LineParser {
	return &lineParser{}
}

func (p *lineParser) Parse(line string) (*models.LogRecord, error) {
	line = strings.TrimRight(line, "\r\n")

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, &MalformedLineError{Line: line, Cause: errNoMatch}
	}

	malformed := func(field string, err error) (*models.LogRecord, error) {
		return nil, &MalformedLineError{Line: line, Cause: fmt.Errorf("invalid %s: %w", field, err)}
	}

	ts, err := time.ParseInLocation(models.TimestampLayout, m[1], time.UTC)
	if err != nil {
		return malformed("timestamp", err)
	}
	millis, err := strconv.Atoi(m[2])
	if err != nil {
		return malformed("timestamp", err)
	}
	responseTime, err := parseSeconds(m[6])
	if err != nil {
		return malformed("response time", err)
	}
	queryCount, err := strconv.ParseInt(m[7], 10, 64)
	if err != nil {
		return malformed("query count", err)
	}
	queryTime, err := parseSeconds(m[8])
	if err != nil {
		return malformed("query time", err)
	}

	return &models.LogRecord{
		Timestamp:    ts,
		Millisecond:  millis,
		Method:       models.Method(m[3]),
		Path:         m[4],
		Status:       m[5],
		ResponseTime: responseTime,
		QueryCount:   queryCount,
		QueryTime:    queryTime,
	}, nil
}

func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a non-negative duration: %q", s)
	}
	return v, nil
}
