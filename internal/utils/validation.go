package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"event-crm/pkg/apperrors"
)

var phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Mirrors the intake form contract: digits with optional +, spaces,
	// dashes and parentheses.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidateStruct checks the struct's validator tags and maps failures to
// a VALIDATION_ERROR AppError with a per-field breakdown. Callers
// validate before any write.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Internal(err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
		})
	}
	return apperrors.Validation(fields...)
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "Inquiry.VenuePreferences.Location";
	// drop the root type and lower the first letter of each segment to
	// match the JSON casing of the API.
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
