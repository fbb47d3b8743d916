// Package booking holds the rules of the directory that do not depend on
// storage: the availability check applied when a show is booked, the
// past/upcoming split used by profiles and listings, search term
// resolution and the grouping of venues by area.  Failures are reported
// as *Error values whose Kind tells the caller how to present them.
package booking

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an Error for the presentation layer.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindAvailabilityConflict Kind = "availability_conflict"
	KindPersistence          Kind = "persistence"
)

// Error is the failure descriptor returned by every directory operation.
// Message is safe to show to end users; Err keeps the underlying cause
// for logging and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// Window is set for availability conflicts.
	Window *Window
}

// Window is an artist's inclusive booking interval.
type Window struct {
	From time.Time
	To   time.Time
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind so that errors.Is(err, ErrNotFound)
// works for any not-found error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation           = &Error{Kind: KindValidation}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrAvailabilityConflict = &Error{Kind: KindAvailabilityConflict}
	ErrPersistence          = &Error{Kind: KindPersistence}
)

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a storage failure behind a user-facing message.
func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindPersistence for errors that are
// not *Error values.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "An unexpected error occurred, please try again later."
}
