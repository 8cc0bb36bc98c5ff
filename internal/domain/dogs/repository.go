package dogs

import "context"

type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Dog, error)
}
