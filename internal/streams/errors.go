package streams

import "fmt"

// Error represents a domain-specific error
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	ErrCodeCameraUnreachable = "CAMERA_UNREACHABLE"
	ErrCodeCameraStatus      = "CAMERA_STATUS"
	ErrCodeBadPayload        = "BAD_PAYLOAD"
)

// NewError creates a new stream error
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
