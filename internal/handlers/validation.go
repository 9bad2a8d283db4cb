package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	passwordPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,16}$`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	namePattern     = regexp.MustCompile(`^[\p{L}\p{N}]{2,10}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return passwordPattern.MatchString(value) &&
			hasUpper.MatchString(value) &&
			hasLower.MatchString(value) &&
			hasDigit.MatchString(value)
	})
	_ = v.RegisterValidation("https_url", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		return strings.HasPrefix(value, "https://") && len(value) > len("https://")
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validateRequest returns a client-facing message for the first failing
// rule, or "" when req is valid.
func validateRequest(req any) string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid request"
	}
	return describeFieldError(fieldErrs[0])
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "password":
		return fmt.Sprintf("%s must be 8-16 letters or digits with upper case, lower case and a digit", field)
	case "https_url":
		return fmt.Sprintf("%s must be an https URL", field)
	case "username":
		return fmt.Sprintf("%s must be 2-10 letters or digits", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "dive":
		return fmt.Sprintf("%s contains an invalid value", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
