package diagnostics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Kind        Kind
	Assessment  string
	Findings    []string
	PerformedAt time.Time
}

func (s *Service) Create(ctx context.Context, dogID string, in CreateInput) (Record, error) {
	if strings.TrimSpace(dogID) == "" {
		return Record{}, ErrInvalidInput
	}

	switch in.Kind {
	case KindXRay, KindBloodWork, KindLab:
	default:
		return Record{}, ErrInvalidInput
	}

	if strings.TrimSpace(in.Assessment) == "" {
		return Record{}, ErrInvalidInput
	}
	if in.PerformedAt.IsZero() {
		return Record{}, ErrInvalidInput
	}

	rec := Record{
		ID:          uuid.NewString(),
		DogID:       dogID,
		Kind:        in.Kind,
		Assessment:  strings.TrimSpace(in.Assessment),
		Findings:    in.Findings,
		PerformedAt: in.PerformedAt,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) ListRecent(ctx context.Context, dogID string, since time.Time) ([]Record, error) {
	if strings.TrimSpace(dogID) == "" {
		return nil, nil
	}
	return s.repo.ListRecent(ctx, dogID, since)
}
