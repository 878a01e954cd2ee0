package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB    *sql.DB
	Clock Clock
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, rec Record) (Record, error) {
	const query = `
INSERT INTO analyses (
	id, user_id, job_title, company, job_description, resume_text, score,
	feedback_summary, interview_questions, application_questions, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11)`
	rec = stamp(rec, r.Clock)
	interview, err := encodeQuestions(rec.InterviewQuestions)
	if err != nil {
		return Record{}, err
	}
	application, err := encodeQuestions(rec.ApplicationQuestions)
	if err != nil {
		return Record{}, err
	}
	_, err = r.DB.ExecContext(ctx, query,
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
	)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Record, error) {
	query := `SELECT ` + recordColumns + `
FROM analyses
WHERE id = $1
LIMIT 1`
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
func (r *PGRepo) ListByOwner(ctx context.Context, userID string) ([]Record, error) {
	query := `SELECT ` + recordColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC, seq DESC`
	return queryRecords(ctx, r.DB, query, userID)
}

func queryRecords(ctx context.Context, db *sql.DB, query string, args ...any) ([]Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
