package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct {
	DB    *sql.DB
	Clock Clock
}

// Create inserts a new analysis.
func (r *SQLiteRepo) Create(ctx context.Context, rec Record) (Record, error) {
	const query = `
INSERT INTO analyses (
	id, user_id, job_title, company, job_description, resume_text, score,
	feedback_summary, interview_questions, application_questions, created_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	rec = stamp(rec, r.Clock)
	interview, err := encodeQuestions(rec.InterviewQuestions)
	if err != nil {
		return Record{}, err
	}
	application, err := encodeQuestions(rec.ApplicationQuestions)
	if err != nil {
		return Record{}, err
	}
	if _, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.JobTitle,
		rec.Company,
		rec.JobDescription,
		rec.ResumeText,
		rec.Score,
		rec.FeedbackSummary,
		interview,
		application,
		rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// GetByID returns an analysis by ID.
func (r *SQLiteRepo) GetByID(ctx context.Context, analysisID string) (Record, error) {
	query := `SELECT ` + recordColumns + ` FROM analyses WHERE id = ? LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, analysisID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByOwner returns the owner's analyses, newest first.
func (r *SQLiteRepo) ListByOwner(ctx context.Context, userID string) ([]Record, error) {
	query := `SELECT ` + recordColumns + `
FROM analyses
WHERE user_id = ?
ORDER BY created_at DESC, rowid DESC`
	return queryRecords(ctx, r.DB, query, userID)
}

var _ Repo = (*SQLiteRepo)(nil)
