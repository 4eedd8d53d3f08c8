// Package apperr описывает закрытый набор видов ошибок прикладного уровня.
// Сервисы возвращают *Error, а HTTP-слой один раз отображает Kind в код ответа.
package apperr

import (
	"errors"
	"fmt"
)

// Kind - вид ошибки.
type Kind int

// Виды ошибок.
const (
	Internal Kind = iota
	Validation
	Conflict
	NotFound
	Unauthorized
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error - ошибка с видом, сообщением для клиента и (опционально) исходной причиной.
type Error struct {
	Kind    Kind
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

// New создает ошибку заданного вида.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap создает ошибку заданного вида с сохранением причины.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// NewValidation - некорректные входные данные (400).
func NewValidation(msg string) *Error { return New(Validation, msg) }

// NewConflict - запись уже существует (409).
func NewConflict(msg string) *Error { return New(Conflict, msg) }

// NewNotFound - запись не найдена (404).
func NewNotFound(msg string) *Error { return New(NotFound, msg) }

// NewUnauthorized - нет или неверны учетные данные (401).
func NewUnauthorized(msg string) *Error { return New(Unauthorized, msg) }

// NewForbidden - действие запрещено для этого пользователя (403).
func NewForbidden(msg string) *Error { return New(Forbidden, msg) }

// NewInternal оборачивает непредвиденную ошибку. Сообщение уходит клиенту, причина - только в лог.
func NewInternal(msg string, err error) *Error { return Wrap(Internal, msg, err) }

// KindOf возвращает вид ошибки; любая ошибка не из этого пакета считается Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is сообщает, относится ли err к виду kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
