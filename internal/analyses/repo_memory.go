package analyses

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	Clock Clock

	mu      sync.RWMutex
	byID    map[string]Record
	ordered []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Record)}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	rec = stamp(rec, r.Clock)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID == nil {
		r.byID = make(map[string]Record)
	}
	r.byID[rec.ID] = cloneRecord(rec)
	r.ordered = append(r.ordered, rec.ID)
	return rec, nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[analysisID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// ListByOwner returns the owner's records, newest first. Records created in the
// same millisecond keep newest-inserted first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, userID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Record, 0)
	for i := len(r.ordered) - 1; i >= 0; i-- {
		rec := r.byID[r.ordered[i]]
		if rec.UserID == userID {
			out = append(out, cloneRecord(rec))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

func cloneRecord(rec Record) Record {
	rec.InterviewQuestions = append([]string{}, rec.InterviewQuestions...)
	rec.ApplicationQuestions = append([]string{}, rec.ApplicationQuestions...)
	return rec
}

var _ Repo = (*MemoryRepo)(nil)
