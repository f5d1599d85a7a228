package errcodes

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	Fields   map[string][]string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Fields = err.Fields
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     "not_found",
	}
}

// RelationNotFound indicates an unlink was requested for an author/book pair
// that has no existing edge.
func RelationNotFound() error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  "Author is not linked to this book.",
		Code:     "relation_not_found",
	}
}

// LastAuthor indicates an attempt to remove the only author of a book. Every
// book keeps at least one author at all times.
func LastAuthor() error {
	return &Error{
		HTTPCode: http.StatusConflict,
		Message:  "Book must have at least one author.",
		Code:     "last_author",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
		Fields:   map[string][]string{param: {"Unknown field."}},
	}
}

func ValidationTypeError(field, msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_type_error",
		Fields:   map[string][]string{field: {msg}},
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_error",
	}
}

// ValidationFields carries the full field -> reasons map collected from a
// failed payload validation.
func ValidationFields(fields map[string][]string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  "Validation error.",
		Code:     "validation_error",
		Fields:   fields,
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     "malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty.",
		Code:     "empty_request_body",
	}
}

// IsValidation reports whether err is one of the payload validation errors
// (bad value, bad type, unknown field, malformed or empty body). These are
// the errors the request boundary turns into a validation envelope.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case "validation_error", "validation_type_error", "unknown_parameter",
		"malformed_payload", "empty_request_body":
		return true
	}
	return false
}
