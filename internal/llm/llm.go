package llm

import (
	"context"
	"errors"
	"fmt"
)

// Supported document MIME types for binary resumes.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SupportedMimeType reports whether a binary resume of the given type can be sent to the model.
func SupportedMimeType(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOC, MimeDOCX:
		return true
	default:
		return false
	}
}

// Resume is either a TextResume or a DocumentResume.
type Resume interface {
	isResume()
}

// TextResume is a resume pasted as plain text.
type TextResume struct {
	Text string
}

// DocumentResume is a resume uploaded as a PDF or Word document.
type DocumentResume struct {
	Data     []byte
	MimeType string
}

func (TextResume) isResume()     {}
func (DocumentResume) isResume() {}

// Result is the validated, normalized output of one analysis.
type Result struct {
	Score                int      `json:"score"`
	FeedbackSummary      string   `json:"feedbackSummary"`
	InterviewQuestions   []string `json:"interviewQuestions"`
	ApplicationQuestions []string `json:"applicationQuestions"`
}

// Attachment is a binary part sent alongside the prompt.
type Attachment struct {
	Data     []byte
	MimeType string
}

// Request is a single structured-output call to a generative model.
type Request struct {
	Prompt     string
	Attachment *Attachment
	Schema     []SchemaField
}

// Model is the external generative model. Implementations return the raw text of the
// first candidate; validation happens in the Invoker.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var (
	// ErrMalformedOutput marks model output that is not a JSON object matching the schema.
	ErrMalformedOutput = errors.New("malformed model output")
	// ErrEmptyResponse is returned when the model produced no text at all.
	ErrEmptyResponse = fmt.Errorf("%w: empty model response", ErrMalformedOutput)
	// ErrModelNotConfigured is returned by UnconfiguredModel.
	ErrModelNotConfigured = errors.New("generative model not configured")
)

// AnalysisError is the single failure kind reported by the Invoker. It wraps either a
// transport error from the Model or a validation error on its output.
type AnalysisError struct {
	Cause error
}

func (e *AnalysisError) Error() string {
	if e.Cause == nil {
		return "analysis failed"
	}
	return "analysis failed: " + e.Cause.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// UnconfiguredModel fails every call. It keeps the server bootable without an API key.
type UnconfiguredModel struct{}

// Generate returns ErrModelNotConfigured.
func (UnconfiguredModel) Generate(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrModelNotConfigured
}
