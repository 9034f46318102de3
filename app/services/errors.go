package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/decorhub/app/repositories"
)

// Error kinds. Controllers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// Error is a failure with a client-facing message.
type Error struct {
	Kind    error
	Message string
	Data    any
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// storeErr translates repository sentinels and wraps everything else.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		return fail(ErrInvalidID, "Invalid id")
	case errors.Is(err, repositories.ErrNotFound):
		return fail(ErrNotFound, "Not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}
