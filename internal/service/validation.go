package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldErrorsFrom turns validator failures into client-facing field errors.
// Field names follow the query parameter names the transport layer exposes.
func fieldErrorsFrom(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "request", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: queryParamName(fe.Field()), Message: describe(fe)})
	}
	return out
}

func queryParamName(field string) string {
	switch field {
	case "PageSize":
		return "page_size"
	default:
		return strings.ToLower(field)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// IsValidCustomerID reports whether id looks like a customers primary key.
func IsValidCustomerID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 5 {
		return false
	}
	for _, r := range id {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
