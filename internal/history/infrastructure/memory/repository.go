package memory

import (
	"context"
	"sync"

	"solarcalc/internal/history"
)

// Repository is an in-memory record store for demo/testing and for running
// without a database.
type Repository struct {
	mu      sync.RWMutex
	records []history.Record
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Save appends a record, newest last.
func (r *Repository) Save(ctx context.Context, record *history.Record) error {
	_ = ctx
	if record == nil {
		return history.ErrNilRecord
	}
	if record.ID == "" {
		return history.ErrEmptyID
	}
	r.mu.Lock()
	r.records = append(r.records, *record)
	r.mu.Unlock()
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]history.Record, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]history.Record, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
