package analyses

import "resume-matcher/internal/llm"

// DocumentPlaceholder replaces ResumeText when the resume was submitted as a document.
// The document itself is never persisted.
const DocumentPlaceholder = "[Resume uploaded as document]"

// Record is a persisted analysis. It is immutable once created.
type Record struct {
	ID                   string   `json:"id"`
	UserID               string   `json:"userId"`
	JobTitle             string   `json:"jobTitle"`
	Company              string   `json:"company"`
	JobDescription       string   `json:"jobDescription"`
	ResumeText           string   `json:"resumeText"`
	Score                int      `json:"score"`
	FeedbackSummary      string   `json:"feedbackSummary"`
	InterviewQuestions   []string `json:"interviewQuestions"`
	ApplicationQuestions []string `json:"applicationQuestions"`
	// CreatedAt is epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// SubmitRequest is the raw submission as received at the boundary.
type SubmitRequest struct {
	UserID             string `json:"userId"`
	JobTitle           string `json:"jobTitle"`
	Company            string `json:"company"`
	JobDescription     string `json:"jobDescription"`
	ResumeText         string `json:"resumeText"`
	ResumeBinaryBase64 string `json:"resumeBinaryBase64"`
	ResumeMimeType     string `json:"resumeMimeType"`

	// Older clients send these names.
	ResumeBase64   string `json:"resumeBase64,omitempty"`
	ResumeFileType string `json:"resumeFileType,omitempty"`
}

// Input is a validated submission.
type Input struct {
	UserID         string
	JobTitle       string
	Company        string
	JobDescription string
	Resume         llm.Resume
}

// newRecord maps a validated input and model result onto an unsaved record.
func newRecord(in Input, result llm.Result) Record {
	resumeText := DocumentPlaceholder
	if text, ok := in.Resume.(llm.TextResume); ok {
		resumeText = text.Text
	}
	return Record{
		UserID:               in.UserID,
		JobTitle:             in.JobTitle,
		Company:              in.Company,
		JobDescription:       in.JobDescription,
		ResumeText:           resumeText,
		Score:                result.Score,
		FeedbackSummary:      result.FeedbackSummary,
		InterviewQuestions:   nonNil(result.InterviewQuestions),
		ApplicationQuestions: nonNil(result.ApplicationQuestions),
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
