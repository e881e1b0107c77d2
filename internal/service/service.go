// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/customer-pages-service/internal/model"
	"github.com/maxviazov/customer-pages-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CustomerQuery is a listing request as received from transport.
// Zero values mean "use the configured default". Page is never rejected;
// out-of-range values are clamped to the nearest existing page.
type CustomerQuery struct {
	Page     int
	PageSize int    `validate:"gte=0"`
	Search   string `validate:"max=100"`
}

// CustomerService defines customer-oriented use cases.
type CustomerService interface {
	ListCustomers(ctx context.Context, q CustomerQuery) (pagination.Paged[model.Customer], error)
	GetCustomer(ctx context.Context, id string) (model.Customer, error)
}
