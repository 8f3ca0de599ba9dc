package parsers

import "fmt"

// MalformedLineError reports a line that does not follow the timelog grammar.
// LineNumber is 1-based; it is 0 when the caller parsed a line outside of a file.
type MalformedLineError struct {
	LineNumber int
	Line       string
	Cause      error
}

func (e *MalformedLineError) Error() string {
	msg := fmt.Sprintf("malformed log line %q", e.Line)
	if e.LineNumber > 0 {
		msg = fmt.Sprintf("line %d: %s", e.LineNumber, msg)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedLineError) Unwrap() error {
	return e.Cause
}
