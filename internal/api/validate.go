package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(getTagName)
	return v
}

// getTagName returns the wire name of a struct field, preferring the form tag
// and falling back to json, then the Go field name.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// validateStruct runs struct validation and flattens any failures into the
// field->message mapping surfaced on 422 responses. Returns nil when valid.
func validateStruct(schema any) map[string]string {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = fieldErrDescription(fieldErr)
		}
		return fields
	}

	fields["_schema"] = err.Error()
	return fields
}

func fieldErrDescription(fieldErr validator.FieldError) string {
	param := fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fieldErr.Field())
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", fieldErr.Field(), param)
		}
		return fmt.Sprintf("The %s field must be at least %s.", fieldErr.Field(), param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", fieldErr.Field(), param)
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", fieldErr.Field(), param)
	default:
		return fmt.Sprintf("The %s field failed validation: %s.", fieldErr.Field(), fieldErr.Tag())
	}
}
