package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// ErrorResponse is the error envelope: { "error": "<short message>" },
// optionally with per-field detail for validation failures.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"errors,omitempty"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// HandleValidationError converts a binding/validation error into an
// ErrorResponse with per-field messages when available.
func HandleValidationError(err error) *ErrorResponse {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, FieldError{
				Campo:    fe.Field(),
				Mensagem: formatFieldError(fe),
			})
		}
		return &ErrorResponse{Error: "Dados inválidos", Fields: fields}
	}

	return &ErrorResponse{Error: "Formato de requisição inválido"}
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be a date in " + e.Param() + " format"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
