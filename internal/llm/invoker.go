package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Invoker turns a resume and job description into a validated Result using a Model.
type Invoker struct {
	Model Model
}

// NewInvoker constructs an Invoker.
func NewInvoker(model Model) *Invoker {
	return &Invoker{Model: model}
}

// Analyze calls the model exactly once and validates its output. Every failure is an
// *AnalysisError; there is no retry and no cache.
func (i *Invoker) Analyze(ctx context.Context, resume Resume, jobDescription string) (Result, error) {
	if i == nil || i.Model == nil {
		return Result{}, &AnalysisError{Cause: ErrModelNotConfigured}
	}
	if resume == nil {
		return Result{}, &AnalysisError{Cause: errors.New("resume is required")}
	}

	raw, err := i.Model.Generate(ctx, BuildRequest(resume, jobDescription))
	if err != nil {
		return Result{}, &AnalysisError{Cause: err}
	}

	result, err := ParseResult(raw)
	if err != nil {
		return Result{}, &AnalysisError{Cause: err}
	}
	return result, nil
}

type rawResult struct {
	Score                float64  `json:"score"`
	FeedbackSummary      string   `json:"feedbackSummary"`
	InterviewQuestions   []string `json:"interviewQuestions"`
	ApplicationQuestions []string `json:"applicationQuestions"`
}

// ParseResult validates raw model text against OutputSchema and normalizes the score.
func ParseResult(raw string) (Result, error) {
	cleaned := cleanJSONBlock(raw)
	if cleaned == "" {
		return Result{}, ErrEmptyResponse
	}
	if err := ValidateOutput([]byte(cleaned)); err != nil {
		return Result{}, err
	}

	var parsed rawResult
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	return Result{
		Score:                NormalizeScore(parsed.Score),
		FeedbackSummary:      parsed.FeedbackSummary,
		InterviewQuestions:   parsed.InterviewQuestions,
		ApplicationQuestions: parsed.ApplicationQuestions,
	}, nil
}

// NormalizeScore rounds half away from zero and clamps into [0,100].
func NormalizeScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	rounded := math.Round(score)
	switch {
	case rounded < 0:
		return 0
	case rounded > 100:
		return 100
	default:
		return int(rounded)
	}
}

// cleanJSONBlock strips a markdown code fence some models wrap around JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
