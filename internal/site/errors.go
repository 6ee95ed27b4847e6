// SPDX-License-Identifier: MPL-2.0

package site

import (
	"errors"
	"fmt"
)

// Server error codes.
const (
	CodeFileNotFound   ErrorCode = "FileNotFound"
	CodeAccessDenied   ErrorCode = "AccessDenied"
	CodeConflict       ErrorCode = "Conflict"
	CodeInvalidRequest ErrorCode = "InvalidRequest"
	CodeThrottled      ErrorCode = "Throttled"
	CodeUnavailable    ErrorCode = "Unavailable"
)

// ErrRemote is the sentinel wrapped by ServerError.
var ErrRemote = errors.New("remote site error")

type (
	// ErrorCode classifies a server failure.
	ErrorCode string

	// ServerError is a failure reported by the site.
	ServerError struct {
		Code    ErrorCode
		Message string
		// Path is the server-relative URL the request targeted, if any.
		Path string
	}
)

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns ErrRemote for errors.Is() compatibility.
func (e *ServerError) Unwrap() error {
	return ErrRemote
}

// NewServerError builds a ServerError.
func NewServerError(code ErrorCode, path, format string, args ...any) *ServerError {
	return &ServerError{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first ServerError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

// IsNotFound reports whether err is a "file not found" server error.
func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeFileNotFound
}

// IsConflict reports whether the server refused err because of the file's state.
func IsConflict(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeConflict
}

// IsTransient reports whether err is a server error worth retrying.
func IsTransient(err error) bool {
	code, ok := CodeOf(err)
	return ok && (code == CodeThrottled || code == CodeUnavailable)
}
