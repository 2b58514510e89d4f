package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"warehouse/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator. Failures come back as errs value errors
// named after the JSON field, so they map to 400 like any other validation error.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator reports fields by their JSON names.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return &RequestValidator{validate: v}
}

// Validate checks the struct tags of i and joins one errs error per failed field.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	var joined error
	for _, fe := range fieldErrs {
		joined = errors.Join(joined, fieldError(fe))
	}
	return joined
}

func fieldError(fe validator.FieldError) error {
	name := fe.Namespace()
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return errs.NewValueIsRequiredError(name)
	case "min":
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("must be at least %s", fe.Param()))
	case "oneof":
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("must be one of %s", fe.Param()))
	default:
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("failed %s", fe.Tag()))
	}
}
