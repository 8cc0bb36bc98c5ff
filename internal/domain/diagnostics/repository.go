package diagnostics

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, rec Record) error
	// ListRecent devuelve los estudios con performed_at >= since,
	// ordenados por performed_at descendente.
	ListRecent(ctx context.Context, dogID string, since time.Time) ([]Record, error)
}
