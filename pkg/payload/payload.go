package payload

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/librisbooks/libris/pkg/errcodes"
	"github.com/pkg/errors"
)

// Response is the envelope returned by every mutating endpoint. The HTTP
// status is always 200 for business outcomes; Success is authoritative.
type Response struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	ValidationError map[string][]string `json:"validation_error,omitempty"`
}

func OK(c echo.Context, message string) error {
	return errors.WithStack(c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	}))
}

func Fail(c echo.Context, message string) error {
	return errors.WithStack(c.JSON(http.StatusOK, Response{
		Success: false,
		Message: message,
	}))
}

// Validation turns a binder/validation error into a failure envelope. Errors
// that aren't validation errors are passed back for the central error handler.
func Validation(c echo.Context, err error) error {
	if !errcodes.IsValidation(err) {
		return errors.WithStack(err)
	}

	var e *errcodes.Error
	if !errors.As(err, &e) {
		return errors.WithStack(err)
	}

	fields := e.Fields
	if fields == nil {
		fields = map[string][]string{}
	}

	return errors.WithStack(c.JSON(http.StatusOK, Response{
		Success:         false,
		Message:         "Validation error.",
		ValidationError: fields,
	}))
}
