package models

import (
	"fmt"
	"strconv"
	"time"
)

// Method is the HTTP method of a logged request. The log grammar only admits the
// values listed below.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
)

// Methods lists every method the log grammar accepts, in grammar order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead}

// TimestampLayout is the layout of the timestamp prefix up to whole seconds.
// The millisecond part follows after a comma.
const TimestampLayout = "2006-01-02 15:04:05"

// LogRecord is one parsed line of the timelog.
//
// Example line:
//
//	2019-05-01 12:00:01,500 GET "/api/widgets/42" (200) 0.123 (3q, 0.045)
//
// Timestamp holds the instant truncated to whole seconds (window comparisons use it as is);
// Millisecond keeps the discarded fraction for display.
type LogRecord struct {
	Timestamp    time.Time
	Millisecond  int
	Method       Method
	Path         string
	Status       string
	ResponseTime float64 // seconds
	QueryCount   int64
	QueryTime    float64 // seconds
}

// String renders the record back in the log grammar.
func (r *LogRecord) String() string {
	return fmt.Sprintf("%s,%03d %s \"%s\" (%s) %s (%dq, %s)",
		r.Timestamp.UTC().Format(TimestampLayout),
		r.Millisecond,
		r.Method,
		r.Path,
		r.Status,
		strconv.FormatFloat(r.ResponseTime, 'f', -1, 64),
		r.QueryCount,
		strconv.FormatFloat(r.QueryTime, 'f', -1, 64),
	)
}

// PreciseTimestamp returns the timestamp including the millisecond fraction.
func (r *LogRecord) PreciseTimestamp() time.Time {
	return r.Timestamp.Add(time.Duration(r.Millisecond) * time.Millisecond)
}
