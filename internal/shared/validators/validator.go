package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// TagRegexp validates that a string field compiles as a regular expression.
const TagRegexp = "regexp"

// New creates a new validator instance with the project's custom tags registered.
func New() *Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagRegexp, isRegexp)
	return v
}

func isRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}
