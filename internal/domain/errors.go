package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindValidation ErrorKind = "VALIDATION"
	KindStorage    ErrorKind = "STORAGE"
	KindAccess     ErrorKind = "ACCESS"
	KindInternal   ErrorKind = "INTERNAL"
)

// Error is the application error carried from the services to the HTTP
// boundary. Key is a stable machine-readable code surfaced to clients.
type Error struct {
	Kind    ErrorKind
	Key     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(key, message string) *Error {
	return &Error{Kind: KindNotFound, Key: key, Message: message}
}

func Validation(key, message string) *Error {
	return &Error{Kind: KindValidation, Key: key, Message: message}
}

func Storage(key, message string, err error) *Error {
	return &Error{Kind: KindStorage, Key: key, Message: message, Err: err}
}

func Access(key, message string) *Error {
	return &Error{Kind: KindAccess, Key: key, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Key: "internal", Message: message, Err: err}
}

// KindOf reports the kind of err, or KindInternal for anything untyped.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// ErrNotFound is the bare sentinel used by the storage layer for missing
// rows; services wrap it with an entity-specific key.
var ErrNotFound = NotFound("notfound", "entity not found")
