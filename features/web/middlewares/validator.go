package middlewares

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground validation into Echo so handlers can
// call c.Validate on bound input structs such as the prediction request.
type RequestValidator struct {
	validate *validator.Validate
}

// Validate checks the struct tags and flattens all field violations into a
// single error message for the 400 response body.
func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Error())
	}
	return errors.New(strings.Join(parts, ", "))
}

func ConfigureValidator(e *echo.Echo) {
	e.Validator = &RequestValidator{validate: validator.New()}
}
