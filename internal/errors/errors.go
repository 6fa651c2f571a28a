package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type DuplicateKeyError struct {
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func NewDuplicateKeyError(message string) *DuplicateKeyError {
	return &DuplicateKeyError{Message: message}
}

func IsDuplicateKeyError(err error) (*DuplicateKeyError, bool) {
	if dke, ok := err.(*DuplicateKeyError); ok {
		return dke, true
	}
	return nil, false
}

type AllocationExhaustedError struct {
	Message  string
	Attempts int
}

func (e *AllocationExhaustedError) Error() string {
	return fmt.Sprintf("%s (after %d attempts)", e.Message, e.Attempts)
}

func NewAllocationExhaustedError(message string, attempts int) *AllocationExhaustedError {
	return &AllocationExhaustedError{Message: message, Attempts: attempts}
}

func IsAllocationExhaustedError(err error) (*AllocationExhaustedError, bool) {
	if aee, ok := err.(*AllocationExhaustedError); ok {
		return aee, true
	}
	return nil, false
}

type InvalidStatusError struct {
	Message string
	Status  string
}

func (e *InvalidStatusError) Error() string {
	return e.Message
}

func NewInvalidStatusError(status string, allowed []string) *InvalidStatusError {
	return &InvalidStatusError{
		Message: fmt.Sprintf("invalid status: %s, allowed: %v", status, allowed),
		Status:  status,
	}
}

func IsInvalidStatusError(err error) (*InvalidStatusError, bool) {
	if ise, ok := err.(*InvalidStatusError); ok {
		return ise, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
