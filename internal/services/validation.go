package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and converts failures to ValidationErrors.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	out := make(ValidationErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, toFieldError(e))
	}
	return out
}

func toFieldError(e validator.FieldError) FieldError {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return FieldError{Type: "required", Field: field, Message: fmt.Sprintf("The '%s' field is required.", field)}
	case "gt":
		return FieldError{Type: "numberPositive", Field: field, Message: fmt.Sprintf("The '%s' field must be a positive number.", field)}
	case "email":
		return FieldError{Type: "email", Field: field, Message: fmt.Sprintf("The '%s' field must be a valid e-mail.", field)}
	default:
		return FieldError{Type: e.Tag(), Field: field, Message: fmt.Sprintf("Field '%s' failed on the '%s' tag", field, e.Tag())}
	}
}

// TypeMismatch describes a JSON value whose type cannot fill the field.
func TypeMismatch(field string, kind reflect.Kind) FieldError {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return FieldError{Type: "number", Field: field, Message: fmt.Sprintf("The '%s' field must be a number.", field)}
	case reflect.String:
		return FieldError{Type: "string", Field: field, Message: fmt.Sprintf("The '%s' field must be a string.", field)}
	case reflect.Bool:
		return FieldError{Type: "boolean", Field: field, Message: fmt.Sprintf("The '%s' field must be a boolean.", field)}
	default:
		return FieldError{Type: "type", Field: field, Message: fmt.Sprintf("The '%s' field has the wrong type.", field)}
	}
}
