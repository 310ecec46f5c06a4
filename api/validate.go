package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/bsd-portfolio/errs"
)

// requestValidator checks request bodies against their validate tags, reporting json field names
var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs struct validation and converts the first failure into an ApiErr
func validateStruct(payload any) error {
	return validationError(requestValidator.Struct(payload), "")
}

// validateRows validates every row of a section, prefixing failures with key_<index>
func validateRows[T any](key string, rows []T) error {
	for i, row := range rows {
		if err := validationError(requestValidator.Struct(row), fmt.Sprintf("%s_%d_", key, i)); err != nil {
			return err
		}
	}
	return nil
}

func validationError(err error, prefix string) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return errs.NewBadRequestError(err.Error())
	}

	e := validationErrors[0]
	field := prefix + fieldPath(e.Namespace())
	return errs.NewInvalidFieldError(field, formatFieldError(e))
}

// fieldPath turns "ProjectPayload.images[2].url" into "images_2_url"
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	replacer := strings.NewReplacer("[", "_", "]", "", ".", "_")
	return replacer.Replace(namespace)
}

// formatFieldError formats a single validation failure
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "email":
		return "must be a valid email address"
	case "http_url", "url":
		return "must be a valid http(s) URL"
	default:
		return fmt.Sprintf("validation failed on '%s' tag", e.Tag())
	}
}
