package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db Pinger
}

// NewService constructs a health service. A nil db means the app runs on
// in-memory repositories.
func NewService(db Pinger) *Service {
	return &Service{db: db}
}

// Status reports overall health and the storage backend in use.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s.db == nil {
		return map[string]any{"ok": true, "storage": "memory"}, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "storage": "postgres", "error": "database unreachable"}, false
	}
	return map[string]any{"ok": true, "storage": "postgres"}, true
}
