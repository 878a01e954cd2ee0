package users

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-matcher/internal/shared/storage/db"
)

func TestUpsertKeepsFirstCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	svc.Now = func() time.Time { return time.UnixMilli(1000) }
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1", Email: "a@example.com"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	svc.Now = func() time.Time { return time.UnixMilli(9000) }
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1", Email: "b@example.com"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	user, err := svc.GetByID(context.Background(), "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.CreatedAt != 1000 || user.UpdatedAt != 9000 {
		t.Fatalf("expected createdAt 1000 and updatedAt 9000, got %d/%d", user.CreatedAt, user.UpdatedAt)
	}
	if user.Email != "b@example.com" {
		t.Fatalf("expected email to be refreshed, got %q", user.Email)
	}
}

func TestUpsertRequiresIdentity(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "x"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteRepoUpsertKeepsCreatedAt(t *testing.T) {
	database, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := db.RunMigrations(context.Background(), database, db.DialectSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	repo := &SQLiteRepo{DB: database}
	if err := repo.Upsert(context.Background(), User{ID: "u1", Email: "a@example.com", CreatedAt: 10, UpdatedAt: 10}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(context.Background(), User{ID: "u1", Email: "a@example.com", FullName: "Ann", CreatedAt: 20, UpdatedAt: 20}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	user, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.CreatedAt != 10 || user.UpdatedAt != 20 || user.FullName != "Ann" {
		t.Fatalf("unexpected user %#v", user)
	}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpsertDoesNotTouchCreatedAt(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	mock.ExpectExec(`ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs("u1", "a@example.com", nil, nil, nil, nil, int64(10), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: database}
	if err := repo.Upsert(context.Background(), User{ID: "u1", Email: "a@example.com", CreatedAt: 10, UpdatedAt: 10}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
