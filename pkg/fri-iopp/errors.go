package friiopp

import "fmt"

// ErrorCode represents a FRI engine error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrInvalidPhase represents a protocol phase ordering violation
	ErrInvalidPhase

	// ErrCommitFailed represents a commit phase failure
	ErrCommitFailed

	// ErrQueryFailed represents a query phase failure
	ErrQueryFailed

	// ErrVerifyFailed represents a verify phase failure
	ErrVerifyFailed
)

// FRIError represents a FRI engine error
type FRIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *FRIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fri-iopp error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("fri-iopp error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *FRIError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *FRIError) Is(target error) bool {
	t, ok := target.(*FRIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
