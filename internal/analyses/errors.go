package analyses

import (
	"errors"

	"resume-matcher/internal/llm"
)

// ErrNotFound signals an absent record. It is an outcome, not a failure.
var ErrNotFound = errors.New("analysis not found")

// Error codes returned in the response envelope.
const (
	CodeValidation     = "validation_error"
	CodeAnalysisFailed = "analysis_failed"
	CodeStorage        = "storage_error"
	CodeNotFound       = "not_found"
	CodeForbidden      = "forbidden"
)

// ValidationError is a client-reportable problem with a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvocationError wraps a failed model call or malformed model output.
type InvocationError struct {
	Cause error
}

func (e *InvocationError) Error() string {
	cause := e.Cause
	var analysisErr *llm.AnalysisError
	if errors.As(cause, &analysisErr) && analysisErr.Cause != nil {
		cause = analysisErr.Cause
	}
	if cause == nil {
		return "Failed to analyze resume"
	}
	return "Failed to analyze resume: " + cause.Error()
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// StorageError wraps a failed record read or write.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause == nil {
		return "storage " + e.Op + " failed"
	}
	return "storage " + e.Op + " failed: " + e.Cause.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
