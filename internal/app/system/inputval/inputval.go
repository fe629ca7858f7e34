// internal/app/system/inputval/inputval.go
package inputval

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule, already phrased for display.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures in struct field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for a field (by label), or "".
func (r *Result) For(label string) string {
	for _, e := range r.Errors {
		if e.Field == label {
			return e.Message
		}
	}
	return ""
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their human label so messages read naturally.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})

		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseRole(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return v
}

// Validate runs the `validate` tags on s (a struct or pointer to struct).
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: "Invalid input."})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return res
}

// IsValidEmail reports whether s is a bare email address.
func IsValidEmail(s string) bool {
	return instance().Var(strings.TrimSpace(s), "required,email") == nil
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "notblank", "required_if":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "latitude":
		return label + " must be a valid latitude."
	case "longitude":
		return label + " must be a valid longitude."
	case "datetime":
		if strings.Contains(fe.Param(), "2006") {
			return label + " must be a valid date."
		}
		return label + " must be a valid time."
	case "e164":
		return label + " must be a phone number like +15551234567."
	case "role":
		return label + " must be a valid role."
	default:
		return label + " is invalid."
	}
}
