package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldRunID      = "run_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldLogFile     = "log_file"
	FieldLineNumber  = "line_number"
	FieldRequestPath = "request_path"
	FieldTimestamp   = "record_timestamp"
	FieldWindowStart = "window_start"
	FieldEntryCount  = "entry_count"
	FieldLockName    = "lock_name"
)
