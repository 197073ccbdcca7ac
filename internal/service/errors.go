package service

import (
	"errors"
	"net/http"
)

// Kind 錯誤分類，對應到 HTTP 狀態碼
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
	KindInvalidCredentials
	KindAlreadyInState
	KindInvalidTransition
	KindPersistence
	KindInternal
)

var kindNames = map[Kind]string{
	KindValidation:         "validation_error",
	KindDuplicate:          "duplicate_identity",
	KindNotFound:           "not_found",
	KindInvalidCredentials: "invalid_credentials",
	KindAlreadyInState:     "already_in_state",
	KindInvalidTransition:  "invalid_transition",
	KindPersistence:        "persistence_error",
	KindInternal:           "internal_error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown_error"
}

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate, KindAlreadyInState, KindInvalidTransition:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by every service operation. Message is safe to show to
// clients; Err carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf 取出錯誤分類；非 *Error 一律視為 KindInternal
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func validationError(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func persistenceError(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

func internalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}
