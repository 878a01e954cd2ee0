package analyses

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func fixedClock(ms int64) Clock {
	return func() time.Time { return time.UnixMilli(ms) }
}

func sampleRecord(userID string) Record {
	return Record{
		UserID:               userID,
		JobTitle:             "Backend Engineer",
		JobDescription:       "Go",
		ResumeText:           "resume",
		Score:                70,
		FeedbackSummary:      "ok",
		InterviewQuestions:   []string{"q1"},
		ApplicationQuestions: []string{"a1"},
	}
}

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Clock = fixedClock(1000)

	created, err := repo.Create(context.Background(), sampleRecord("u1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedAt != 1000 {
		t.Fatalf("expected id and createdAt, got %#v", created)
	}

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FeedbackSummary != "ok" || got.InterviewQuestions[0] != "q1" {
		t.Fatalf("unexpected record %#v", got)
	}

	got.InterviewQuestions[0] = "mutated"
	again, _ := repo.GetByID(context.Background(), created.ID)
	if again.InterviewQuestions[0] != "q1" {
		t.Fatalf("stored record should not be mutable through returned copy")
	}

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListOrdersNewestFirstWithStableTies(t *testing.T) {
	repo := NewMemoryRepo()
	now := int64(1000)
	repo.Clock = func() time.Time { return time.UnixMilli(now) }

	first, _ := repo.Create(context.Background(), sampleRecord("u1"))
	tie, _ := repo.Create(context.Background(), sampleRecord("u1"))
	now = 3000
	newest, _ := repo.Create(context.Background(), sampleRecord("u1"))
	_, _ = repo.Create(context.Background(), sampleRecord("u2"))

	list, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	want := []string{newest.ID, tie.ID, first.ID}
	if len(list) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, list[i].ID)
		}
	}

	empty, err := repo.ListByOwner(context.Background(), "nobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v, %v", empty, err)
	}
}

func TestMemoryRepoConcurrentCreates(t *testing.T) {
	repo := NewMemoryRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(context.Background(), sampleRecord("u1")); err != nil {
				t.Errorf("Create: %v", err)
			}
		}()
	}
	wg.Wait()

	list, _ := repo.ListByOwner(context.Background(), "u1")
	if len(list) != 50 {
		t.Fatalf("expected 50 records, got %d", len(list))
	}
}

func TestMemoryRepoHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemoryRepo().Create(ctx, sampleRecord("u1")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
