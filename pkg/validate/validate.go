// Package validate runs struct-tag validation at the HTTP boundary.
//
// Rules are go-playground/validator tags; failures come back as a map of
// JSON field name → human-readable message:
//
//	type AssignInput struct {
//	    OrderID string `json:"orderId" validate:"required,hexadecimal,len=24"`
//	    Email   string `json:"assignedDecoratorEmail" validate:"required,email"`
//	}
//
//	errs := validate.Struct(in)
//	// map[orderId:"The orderId field is required."]
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validatorv10.Validate
)

func engine() *validatorv10.Validate {
	once.Do(func() {
		v := validatorv10.New(validatorv10.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		instance = v
	})
	return instance
}

// Struct validates v and returns field → message. An empty map means valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: v was not a struct.
		return errs
	}

	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := errs[name]; seen {
			continue
		}
		errs[name] = message(fe, name)
	}
	return errs
}

// Var validates a single value against tag, e.g. Var(email, "required,email").
func Var(value interface{}, tag string) error {
	return engine().Var(value, tag)
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func message(fe validatorv10.FieldError, field string) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid (allowed: %s).", field, strings.ReplaceAll(param, " ", ", "))
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, param)
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", field, param)
	case "hexadecimal":
		return fmt.Sprintf("The %s must be a hexadecimal identifier.", field)
	case "datetime":
		return fmt.Sprintf("The %s does not match the format %s.", field, param)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
