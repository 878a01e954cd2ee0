package analyses

import (
	"context"
	"errors"
	"time"

	"resume-matcher/internal/llm"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/telemetry"
)

// Analyzer scores a resume against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, resume llm.Resume, jobDescription string) (llm.Result, error)
}

// Service runs the submission pipeline: validate, analyze, persist.
type Service struct {
	Repo     Repo
	Analyzer Analyzer
}

// NewService constructs a Service.
func NewService(repo Repo, analyzer Analyzer) *Service {
	return &Service{Repo: repo, Analyzer: analyzer}
}

// Submit validates the request, invokes the model once and stores the result.
// Errors are *ValidationError, *InvocationError or *StorageError. Nothing is
// stored unless the model produced a well-formed result.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (Record, error) {
	requestID := requestIDFromContext(ctx)

	in, err := Validate(req)
	if err != nil {
		metrics.IncAnalysisRejected()
		telemetry.Warn("analysis.rejected", map[string]any{
			"request_id": requestID,
			"user_id":    req.UserID,
			"reason":     err.Error(),
		})
		return Record{}, err
	}

	metrics.IncAnalysisSubmitted()
	telemetry.Info("analysis.submitted", map[string]any{
		"request_id":  requestID,
		"user_id":     in.UserID,
		"resume_kind": resumeKind(in.Resume),
	})

	if s.Analyzer == nil {
		return Record{}, s.fail(requestID, in.UserID, "invoke", &InvocationError{Cause: llm.ErrModelNotConfigured})
	}

	start := time.Now()
	result, err := s.Analyzer.Analyze(ctx, in.Resume, in.JobDescription)
	if err != nil {
		return Record{}, s.fail(requestID, in.UserID, "invoke", &InvocationError{Cause: err})
	}

	rec, err := s.Repo.Create(ctx, newRecord(in, result))
	if err != nil {
		return Record{}, s.fail(requestID, in.UserID, "store", &StorageError{Op: "create", Cause: err})
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":  requestID,
		"user_id":     rec.UserID,
		"analysis_id": rec.ID,
		"score":       rec.Score,
		"band":        llm.Band(rec.Score),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return rec, nil
}

func (s *Service) fail(requestID, userID, stage string, err error) error {
	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.failed", map[string]any{
		"request_id": requestID,
		"user_id":    userID,
		"stage":      stage,
		"error":      err,
	})
	return err
}

// Get returns a record by ID. ErrNotFound passes through unwrapped.
func (s *Service) Get(ctx context.Context, analysisID string) (Record, error) {
	rec, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, &StorageError{Op: "get", Cause: err}
	}
	return rec, nil
}

// GetForOwner returns a record only when it belongs to userID.
func (s *Service) GetForOwner(ctx context.Context, analysisID, userID string) (Record, error) {
	rec, err := s.Get(ctx, analysisID)
	if err != nil {
		return Record{}, err
	}
	if rec.UserID != userID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns the owner's records, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	recs, err := s.Repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, &StorageError{Op: "list", Cause: err}
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

func resumeKind(resume llm.Resume) string {
	if doc, ok := resume.(llm.DocumentResume); ok {
		return doc.MimeType
	}
	return "text"
}
