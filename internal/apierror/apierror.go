// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldError describes one rejected field. Field uses the JSON path of the
// input, e.g. "products[0].patient_name".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps the ordered list of field errors.
type ValidationError struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors"`
}

func NewValidation(errs []FieldError) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Errors: errs}
}
