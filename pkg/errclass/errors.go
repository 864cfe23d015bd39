package errclass

import "fmt"

// GlareError is a stable, machine-readable error class.
type GlareError struct {
	Code    string
	Message string
	// Hint carries an operator-facing remediation suggestion for domain
	// errors (e.g. a repository index inconsistency). Empty otherwise.
	Hint string
}

func (e *GlareError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GlareError) Is(target error) bool {
	t, ok := target.(*GlareError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new GlareError with the same Code but a specific message.
func (e *GlareError) WithMessage(msg string) *GlareError {
	return &GlareError{Code: e.Code, Message: msg, Hint: e.Hint}
}

// WithMessagef returns a new GlareError with a formatted message.
func (e *GlareError) WithMessagef(format string, args ...any) *GlareError {
	return &GlareError{Code: e.Code, Message: fmt.Sprintf(format, args...), Hint: e.Hint}
}

// All stable error classes.
var (
	ErrOriginInvalid      = &GlareError{Code: "E_ORIGIN_INVALID"}
	ErrTransport          = &GlareError{Code: "E_TRANSPORT"}
	ErrParse              = &GlareError{Code: "E_PARSE"}
	ErrSnapshotNotFound   = &GlareError{Code: "E_SNAPSHOT_NOT_FOUND"}
	ErrScheduleInvalid    = &GlareError{Code: "E_SCHEDULE_INVALID"}
	ErrSubscriptionClosed = &GlareError{Code: "E_SUBSCRIPTION_DISPOSED"}
	ErrRepoIndex          = &GlareError{
		Code: "E_REPO_INDEX",
		Hint: "the repository index is inconsistent; run a repair-index pass on the worker and retry",
	}
)
