package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается репозиторием, когда события с таким id нет.
var ErrNotFound = errors.New("event not found")

var (
	ErrLookupNotFound  = errors.New("lookup: no match")
	ErrLookupMalformed = errors.New("lookup: malformed input")
	ErrLookupDisabled  = errors.New("lookup: service disabled")
)

// ValidationError — ошибка пользовательского ввода, отдаётся клиенту как 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// LookupError — сбой внешнего сервиса адресов или геокодинга.
type LookupError struct {
	Service string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// StorageError — сбой БД или файловой системы. Детали клиенту не отдаются.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
