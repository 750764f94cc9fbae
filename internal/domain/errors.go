package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnavailable     = errors.New("not available")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrUserNotFound    = errors.New("user not found after login")
	ErrLoanNotFound    = errors.New("loan not found")
	ErrInvalidResponse = errors.New("invalid response")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindInvalidRequest  ErrorKind = "invalid_request"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindHTTP            ErrorKind = "http"
	KindExecution       ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: file path or request path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Reason returns the innermost message of an error chain, skipping the
// OpError decorations, so it can be shown to a user.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var oe *OpError
	for errors.As(err, &oe) && oe.Err != nil {
		err = oe.Err
	}
	return err.Error()
}
