package epidoc

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNAVAILABLE  = "unavailable"
	EIMPORT       = "import"
	ETRANSFORM    = "transform"
	ENOSTYLESHEET = "no_stylesheet"
	ENODOCUMENT   = "no_document"
	EEMPTY        = "empty_result"
	ENOBODY       = "no_body"
)

// Error represents an application-specific error. Engine diagnostics that
// caused the failure are kept in Report so callers can format them at the
// boundary.
type Error struct {
	Code    string
	Message string

	// Report holds the processor diagnostics behind the error, if any.
	Report ErrorReport

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	msg := fmt.Sprintf("epidoc error: code=%s message=%s", e.Code, e.Message)
	if len(e.Report) > 0 {
		msg += "\n" + e.Report.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error."
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorReportOf unwraps an application error and returns its diagnostics.
func ErrorReportOf(err error) ErrorReport {
	var e *Error
	if errors.As(err, &e) {
		return e.Report
	}
	return nil
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
