// internal/utils/validator.go
package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/mvshop-backend/internal/apperrors"
)

var (
	validate    *validator.Validate
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func init() {
	validate = validator.New()
	// Report fields under their JSON names so clients can map errors back.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("slug", validateSlug)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// ValidationError is the field-level error shape shared with apperrors.
type ValidationError = apperrors.FieldError

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// ValidationFailure validates s and converts any violations into a
// validation AppError. Non-validator errors are returned unchanged.
func ValidationFailure(s interface{}) error {
	err := ValidateStruct(s)
	if err == nil {
		return nil
	}
	if fields := GetValidationErrors(err); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return err
}

func getValidationMessage(e validator.FieldError) string {
	numeric := false
	switch e.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		if numeric {
			return e.Field() + " must be at least " + e.Param()
		}
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		if numeric {
			return e.Field() + " must be at most " + e.Param()
		}
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		if e.Param() == "0" {
			return e.Field() + " cannot be negative"
		}
		return e.Field() + " must be at least " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "slug":
		return e.Field() + " must contain only lowercase letters, numbers, and hyphens"
	default:
		return e.Field() + " is invalid"
	}
}
