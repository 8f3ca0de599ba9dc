package models

import (
	"fmt"
	"strings"
	"time"
)

// windowStartLayouts are tried in order. Values without a zone are UTC, like the log itself.
var windowStartLayouts = []string{
	time.RFC3339Nano,
	TimestampLayout + ".000",
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseWindowStart parses a user supplied window start. An empty string means no window.
func ParseWindowStart(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range windowStartLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid window start %q: want RFC3339 or %q", s, TimestampLayout)
}
