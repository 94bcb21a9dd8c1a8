// Package apperr defines the error kinds surfaced by the API.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for translation into a response.
type Kind string

const (
	KindInternal         Kind = "internal"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindUpstream         Kind = "upstream_unavailable"
)

// Error wraps an underlying error with a kind and a message safe to show callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func MethodNotAllowed(message string) *Error {
	return New(KindMethodNotAllowed, message, nil)
}

// Upstream marks a failure of the spreadsheet backend.
func Upstream(message string, err error) *Error {
	return New(KindUpstream, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
