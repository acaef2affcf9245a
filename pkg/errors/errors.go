package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
)

// HTTPStatus maps a Kind to its response status. Conflicts on unique fields
// are reported as 400 to stay compatible with existing clients.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a business error carrying a numeric code and an optional detail.
// Two errors match under errors.Is when their codes are equal, so sentinels
// keep working after WithDetail.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Detail  string
}

// New creates a sentinel business error.
func New(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Is matches on Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of e carrying a formatted detail.
func (e *Error) WithDetail(format string, args ...interface{}) *Error {
	cp := *e
	cp.Detail = fmt.Sprintf(format, args...)
	return &cp
}

// Messagef returns a copy of e whose message is replaced. Used where the
// client contract expects a specific sentence, e.g. "Room with code X already exists".
func (e *Error) Messagef(format string, args ...interface{}) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

// As extracts a business error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ── shared errors ──

var (
	ErrInvalidInput = New(KindValidation, 10001, "invalid request parameters")
	ErrUnauthorized = New(KindUnauthorized, 10002, "not authenticated")
	ErrForbidden    = New(KindForbidden, 10003, "permission denied")
	ErrRateLimited  = New(KindValidation, 10004, "too many requests, try again later")
	ErrBodyTooLarge = New(KindValidation, 10005, "request body too large")
	ErrInvalidDate  = New(KindValidation, 10006, "invalid date, expected YYYY-MM-DD")
	// ErrMissingReference a foreign key points at a row that does not exist.
	ErrMissingReference = New(KindValidation, 10007, "referenced entity not found")
)
