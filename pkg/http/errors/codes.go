package errors

// Stable error codes returned by the API.
const (
	ErrCodeInternalError  = "internal_error"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeInvalidSecret  = "invalid_secret"
	ErrCodeMissingField   = "missing_field"
	ErrCodeOutOfRange     = "out_of_range"
)
