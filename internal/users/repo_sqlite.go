package users

import (
	"context"
	"database/sql"
)

type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, given_name, family_name, picture_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
  email = excluded.email,
  full_name = excluded.full_name,
  given_name = excluded.given_name,
  family_name = excluded.family_name,
  picture_url = excluded.picture_url,
  updated_at = excluded.updated_at`
	_, err := r.DB.ExecContext(ctx, query, upsertArgs(user)...)
	return err
}

func (r *SQLiteRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, given_name, family_name, picture_url, created_at, updated_at
FROM users
WHERE id = ?
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}
