package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// ValidationError: нарушено ограничение на данные (цена, обязательное поле, уникальность)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError: переход состояния запрещён
type TransitionError struct {
	From    PropertyState
	Action  string
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

// ConflictError: у объекта уже есть принятое предложение
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsTransition(err error) bool {
	var t *TransitionError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
