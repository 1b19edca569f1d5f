package errors

import (
	"errors"
	"net/http"
)

// Kinds of failures the domain layers report. Match them with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrDuplicateSlug = errors.New("duplicate slug")
	ErrConflict      = errors.New("conflict")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Kind       error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Kind
}

func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest, Kind: ErrValidation}
}

func NotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound, Kind: ErrNotFound}
}

func Unauthorized(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized, Kind: ErrUnauthorized}
}

func Forbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden, Kind: ErrForbidden}
}

func DuplicateSlug(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict, Kind: ErrDuplicateSlug}
}

func Conflict(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict, Kind: ErrConflict}
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsUnauthorized(err error) bool  { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool     { return errors.Is(err, ErrForbidden) }
func IsDuplicateSlug(err error) bool { return errors.Is(err, ErrDuplicateSlug) }

// StatusCode returns the HTTP status carried by err, 500 for anything untyped.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
