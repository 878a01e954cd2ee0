package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Store   string
	Model   string
	Timeout time.Duration
}

// NewService constructs a new health service. db may be nil for the in-memory store.
func NewService(db Pinger, store, model string) *Service {
	return &Service{DB: db, Store: store, Model: model, Timeout: 2 * time.Second}
}

// Status reports liveness and store reachability.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	payload := map[string]any{"ok": true, "store": s.Store}
	if s.Model != "" {
		payload["model"] = s.Model
	}
	if s.DB == nil {
		return payload, true
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		payload["ok"] = false
		payload["error"] = err.Error()
		return payload, false
	}
	return payload, true
}
