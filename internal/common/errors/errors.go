// Package errors provides standardized error handling for the card gateway.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationRejected ErrorCode = "VALIDATION_REJECTED"
	ErrCodeBackendDeclined    ErrorCode = "BACKEND_DECLINED"
	ErrCodeTransportFault     ErrorCode = "TRANSPORT_FAULT"
	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
)

// GatewayError represents a structured application error.
type GatewayError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("GatewayError[%s]: %s", e.Code, e.Message)
}

// NewValidationRejectedError flags a caller payload whose shape or
// allow-list check failed. No network call is made for these.
func NewValidationRejectedError(operation string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeValidationRejected,
		Message:   "Validation error: request data does not match the operation contract",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendDeclinedError flags a reply that arrived at the transport level
// but carries a declining business response code.
func NewBackendDeclinedError(operation, responseCode string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeBackendDeclined,
		Message:   "Backend declined the transaction",
		Details:   fmt.Sprintf("operation: %s, responseCode: %s", operation, responseCode),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportFaultError flags a failed round trip to a backend.
func NewTransportFaultError(operation string, err error) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeTransportFault,
		Message:   "Backend call failed at the transport level",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputParsingFailedError flags a request body that could not be decoded
// before validation was even attempted.
func NewInputParsingFailedError(err error) *GatewayError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &GatewayError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse request payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
