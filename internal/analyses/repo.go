package analyses

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Repo defines persistence operations for analyses.
type Repo interface {
	// Create assigns ID and CreatedAt, stores the record and returns it.
	Create(ctx context.Context, rec Record) (Record, error)
	// GetByID returns ErrNotFound when no record has the id.
	GetByID(ctx context.Context, analysisID string) (Record, error)
	// ListByOwner returns the owner's records, newest first. Never nil.
	ListByOwner(ctx context.Context, userID string) ([]Record, error)
}

// Clock returns the current time. Repos use it to stamp CreatedAt.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func stamp(rec Record, clock Clock) Record {
	rec.ID = uuid.NewString()
	rec.CreatedAt = clock.now().UnixMilli()
	rec.InterviewQuestions = nonNil(rec.InterviewQuestions)
	rec.ApplicationQuestions = nonNil(rec.ApplicationQuestions)
	return rec
}

type rowScanner interface {
	Scan(dest ...any) error
}

const recordColumns = `id, user_id, job_title, company, job_description, resume_text, score,
       feedback_summary, interview_questions, application_questions, created_at`

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var interview, application []byte
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.JobTitle,
		&rec.Company,
		&rec.JobDescription,
		&rec.ResumeText,
		&rec.Score,
		&rec.FeedbackSummary,
		&interview,
		&application,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	var err error
	if rec.InterviewQuestions, err = decodeQuestions(interview); err != nil {
		return Record{}, err
	}
	if rec.ApplicationQuestions, err = decodeQuestions(application); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func encodeQuestions(list []string) (string, error) {
	data, err := json.Marshal(nonNil(list))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeQuestions(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return nonNil(list), nil
}
