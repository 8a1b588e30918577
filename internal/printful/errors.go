package printful

import (
	"errors"
	"fmt"
)

// Common Printful API errors
var (
	// ErrInvalidResponse is returned when an orders page lacks pagination metadata
	// or its body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response from API")

	// ErrMissingAPIKey is returned when the client is built without a bearer credential.
	ErrMissingAPIKey = errors.New("missing Printful API key: set PRINTFUL_API_KEY")
)

// FetchFailedError is returned when the orders endpoint answers with a non-2xx status.
type FetchFailedError struct {
	StatusCode int
	Offset     int
}

// Error implements the error interface.
func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("failed to retrieve orders. Error Code: %d", e.StatusCode)
}

// APIError wraps errors with the Printful operation that failed.
type APIError struct {
	// Op is the operation that failed (e.g., "ListOrders").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("printful: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("printful: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError with the specified operation and underlying error.
func NewAPIError(op string, err error, details string) *APIError {
	return &APIError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapAPIError wraps an error as an APIError if it isn't already one.
func WrapAPIError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	return NewAPIError(op, err, details)
}
