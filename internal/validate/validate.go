// Package validate checks mutation payloads client-side before any network
// call, so obviously broken input never reaches the wire.
package validate

import (
	"strings"

	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs tag validation on payload and converts failures into the
// uniform validation error carrying per-field details.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return domainerrors.ErrValidationFailed.WithDetails(describe(fields))
	}

	return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
}

func describe(fields validator.ValidationErrors) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		part := field.Field() + ": " + field.Tag()
		if field.Param() != "" {
			part += "=" + field.Param()
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "; ")
}
