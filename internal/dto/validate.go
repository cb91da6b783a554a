package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator with the application's custom rules
// registered. Field names in error output follow the json tag.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("password", validPassword)
	return validate
}

// validPassword enforces the password composition rules: at least 8
// characters with one upper, one lower and one digit.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// FieldErrors flattens validator errors into a field -> message map suitable
// for API responses. Non-validator errors produce a single "body" entry.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["body"] = err.Error()
		return fields
	}
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = messageFor(fieldError)
	}
	return fields
}

func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldError.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldError.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fieldError.Param())
	case "password":
		return "must be at least 8 characters with an upper case letter, a lower case letter and a digit"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldError.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	}
	return "is invalid"
}
