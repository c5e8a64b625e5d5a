// Package apperror содержит типизированные ошибки приложения, которые handler'ы переводят в HTTP статусы.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// ошибки уровня репозиториев, сервисы переводят их в Error нужного вида
var (
	ErrNotFound = errors.New("запись не найдена")
	ErrConflict = errors.New("запись уже существует")
)

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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func BadRequest(message string) error {
	return New(KindBadRequest, message)
}

func Unauthorized(message string) error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) error {
	return New(KindForbidden, message)
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

func Conflict(message string) error {
	return New(KindConflict, message)
}

func Internal(message string, err error) error {
	return Wrap(KindInternal, message, err)
}

// KindOf : ошибки без типа считаются внутренними
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage : текст, который можно отдать клиенту. Причина внутренних ошибок не раскрывается.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return "internal server error"
	}
	return appErr.Error()
}
