package models

import "fmt"

// Error codes used for log output and internal error handling.
const (
	// ErrCodeSession marks browser launch/connect failures. These are fatal:
	// without a session no probe can run.
	ErrCodeSession = "SESSION_FAILURE"

	// ErrCodeNavigation marks a failed page navigation or reload.
	ErrCodeNavigation = "NAVIGATION_FAILED"

	// ErrCodeTimeout marks a probe operation that exceeded its deadline.
	ErrCodeTimeout = "PROBE_TIMEOUT"

	// ErrCodeProbe marks any other recoverable probe failure.
	ErrCodeProbe = "PROBE_FAILURE"

	// ErrCodeRender marks a failure while producing a report artifact.
	ErrCodeRender = "RENDER_FAILED"
)

// AuditError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type AuditError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *AuditError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// NewAuditError creates a new AuditError.
func NewAuditError(code, message string, err error) *AuditError {
	return &AuditError{Code: code, Message: message, Err: err}
}
