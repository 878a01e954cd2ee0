package analyses

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"

	"resume-matcher/internal/llm"
)

// scriptedModel returns a fixed raw output and counts calls.
type scriptedModel struct {
	mu    sync.Mutex
	raw   string
	err   error
	calls int
	last  llm.Request
}

func (m *scriptedModel) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = req
	return m.raw, m.err
}

func (m *scriptedModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// failingRepo fails every operation with err.
type failingRepo struct {
	err     error
	creates int
}

func (r *failingRepo) Create(ctx context.Context, rec Record) (Record, error) {
	r.creates++
	return Record{}, r.err
}

func (r *failingRepo) GetByID(ctx context.Context, analysisID string) (Record, error) {
	return Record{}, r.err
}

func (r *failingRepo) ListByOwner(ctx context.Context, userID string) ([]Record, error) {
	return nil, r.err
}

var errDiskFull = errors.New("disk full")

const wellFormedOutput = `{
  "score": 87.6,
  "feedbackSummary": "Strong backend match; limited Kubernetes exposure.",
  "interviewQuestions": ["q1", "q2", "q3", "q4", "q5"],
  "applicationQuestions": ["a1", "a2", "a3", "a4"]
}`

func textRequest() SubmitRequest {
	return SubmitRequest{
		UserID:         "u1",
		JobTitle:       "Backend Engineer",
		Company:        "Acme",
		JobDescription: "Go, Postgres",
		ResumeText:     "5 yrs Go",
	}
}

func documentRequest(data []byte, mimeType string) SubmitRequest {
	return SubmitRequest{
		UserID:             "u1",
		JobTitle:           "Designer",
		JobDescription:     "Figma",
		ResumeBinaryBase64: base64.StdEncoding.EncodeToString(data),
		ResumeMimeType:     mimeType,
	}
}

func newTestService(model *scriptedModel) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return NewService(repo, llm.NewInvoker(model)), repo
}
