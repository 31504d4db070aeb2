package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds map one-to-one onto HTTP statuses in Status below.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindAuth
	KindForbidden
	KindNotFound
	KindPartialFailure
	KindInternal
)

// Error is the application error carried from services up to handlers.
// Messages of every kind except KindInternal are safe to return verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, optional

	// CreatedIDs is set on KindPartialFailure: ids of the occurrences that
	// were inserted before the failing one (rolled back by the surrounding
	// transaction, reported so the caller knows where the batch broke).
	CreatedIDs []string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Auth(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func PartialFailure(createdIDs []string, cause error) *Error {
	return &Error{
		Kind:       KindPartialFailure,
		Message:    fmt.Sprintf("batch failed after %d occurrence(s)", len(createdIDs)),
		Err:        cause,
		CreatedIDs: createdIDs,
	}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: cause}
}

// As extracts an *Error from any error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// Status returns the HTTP status for an error. Unknown errors are treated
// as internal.
func Status(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindPartialFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
