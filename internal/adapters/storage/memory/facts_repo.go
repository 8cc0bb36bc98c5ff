package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-ai-context/internal/domain/facts"
)

type factRepo struct {
	mu   sync.RWMutex
	byID map[string]facts.PetFact
}

func NewFactRepo() facts.Repository {
	return &factRepo{
		byID: make(map[string]facts.PetFact),
	}
}

func (r *factRepo) Create(ctx context.Context, f facts.PetFact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		return errors.New("fact id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("fact already exists")
	}

	r.byID[f.ID] = f
	return nil
}

func (r *factRepo) Update(ctx context.Context, f facts.PetFact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		return errors.New("fact id required")
	}
	if _, exists := r.byID[f.ID]; !exists {
		return ErrNotFound
	}
	r.byID[f.ID] = f
	return nil
}

func (r *factRepo) GetByID(ctx context.Context, id string) (facts.PetFact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return facts.PetFact{}, ErrNotFound
	}
	return f, nil
}

func (r *factRepo) ListByDog(ctx context.Context, dogID string, filter facts.ListFilter) ([]facts.PetFact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]facts.PetFact, 0)

	for _, f := range r.byID {
		if f.DogID != dogID {
			continue
		}

		// Category filter
		if len(filter.Categories) > 0 {
			ok := false
			for _, c := range filter.Categories {
				if f.Category == c {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Status filter
		if len(filter.Statuses) > 0 {
			ok := false
			for _, st := range filter.Statuses {
				if f.Status == st {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Query filter
		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(f.Fact + " " + f.Notes)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, f)
	}

	// Orden por occurred_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
