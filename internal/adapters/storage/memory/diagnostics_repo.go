package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-ai-context/internal/domain/diagnostics"
)

type diagnosticsRepo struct {
	mu   sync.RWMutex
	byID map[string]diagnostics.Record
}

func NewDiagnosticsRepo() diagnostics.Repository {
	return &diagnosticsRepo{
		byID: make(map[string]diagnostics.Record),
	}
}

func (r *diagnosticsRepo) Create(ctx context.Context, rec diagnostics.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("diagnostic id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("diagnostic already exists")
	}

	r.byID[rec.ID] = rec
	return nil
}

func (r *diagnosticsRepo) ListRecent(ctx context.Context, dogID string, since time.Time) ([]diagnostics.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diagnostics.Record, 0)
	for _, rec := range r.byID {
		if rec.DogID != dogID {
			continue
		}
		if rec.PerformedAt.Before(since) {
			continue
		}
		out = append(out, rec)
	}

	// Orden por performed_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].PerformedAt.After(out[j].PerformedAt)
	})

	return out, nil
}
