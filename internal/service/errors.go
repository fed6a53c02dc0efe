package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindInvalidInput
	KindNotFound
	KindStorageFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// Error is returned by every service operation. Message is safe to show to
// the user; Err keeps the cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput, Message: "Invalid input"}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "Not found"}
	ErrStorageFailure = &Error{Kind: KindStorageFailure, Message: "Something went wrong. Please try again."}
)

// KindOf returns the kind of err, or 0 when err is not a service error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOf returns the user facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrStorageFailure.Message
}

func invalidInput(message string) error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func notFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func storageFailure(err error) error {
	return &Error{Kind: KindStorageFailure, Message: ErrStorageFailure.Message, Err: err}
}
