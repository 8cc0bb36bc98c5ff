package facts

import "context"

type Repository interface {
	Create(ctx context.Context, f PetFact) error
	Update(ctx context.Context, f PetFact) error
	GetByID(ctx context.Context, id string) (PetFact, error)
	ListByDog(ctx context.Context, dogID string, filter ListFilter) ([]PetFact, error)
}

type ListFilter struct {
	Categories []Category
	Statuses   []Status
	Query      string
	Limit      int
}
