// Package apierror defines the error envelope every PromiPoints endpoint
// returns. Handlers translate service errors into it so clients only ever see
// a human-readable detail, never gorm or driver internals. Keeping failures
// behind this envelope also protects the anonymity guarantee: an error path
// must not leak more about a reconocimiento than the success path does.
package apierror

// APIError is the envelope for every 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries the per-field messages produced by request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
