package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
var NewULID = func() string {
	return ulid.Make().String()
}

// NewRunID generates an identifier for one background job run, e.g. "push-01HZ...".
func NewRunID(job string) string {
	return job + "-" + NewULID()
}
