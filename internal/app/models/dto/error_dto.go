package dto

// ErrorCode defines the machine-readable error codes used in error responses
type ErrorCode string

const (
	ErrorCodeValidationError   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrorCodeConflict          ErrorCode = "CONFLICT"
	ErrorCodeResourceExhausted ErrorCode = "RESOURCE_EXHAUSTED"
	ErrorCodeInvalidState      ErrorCode = "INVALID_STATE"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail carries one error's code, message and optional details
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"NOT_FOUND"`
	Message string      `json:"message" example:"Resource not found"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail creates an ErrorDetail with code and message
func NewErrorDetail(code ErrorCode, message string) ErrorDetail {
	return ErrorDetail{Code: code, Message: message}
}

// WithDetails attaches structured details to an ErrorDetail
func (e ErrorDetail) WithDetails(details interface{}) ErrorDetail {
	e.Details = details
	return e
}
