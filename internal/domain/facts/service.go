package facts

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
	Fact     string
	Category Category
	Tags     []string
	Severity Severity
	Status   Status

	OccurredAt *time.Time // nil => se usa CreatedAt

	Notes              string
	PossibleConditions []string
	RecommendedActions []string

	Pinned bool
	Source Source
}

func (s *Service) Create(ctx context.Context, dogID string, in CreateInput) (PetFact, error) {
	if strings.TrimSpace(dogID) == "" {
		return PetFact{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Fact) == "" {
		return PetFact{}, ErrInvalidInput
	}

	now := s.now()

	// Defaults de dominio: occurredAt cae a createdAt, severity a mild.
	occurred := now
	if in.OccurredAt != nil && !in.OccurredAt.IsZero() {
		occurred = *in.OccurredAt
	}

	sev := in.Severity
	if sev == "" {
		sev = SeverityMild
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}

	src := in.Source
	if src == "" {
		src = SourceManual
	}

	f := PetFact{
		ID:                 uuid.NewString(),
		DogID:              dogID,
		Fact:               strings.TrimSpace(in.Fact),
		Category:           in.Category,
		Tags:               cleanTags(in.Tags),
		Severity:           sev,
		Status:             status,
		OccurredAt:         occurred,
		CreatedAt:          now,
		Notes:              strings.TrimSpace(in.Notes),
		PossibleConditions: in.PossibleConditions,
		RecommendedActions: in.RecommendedActions,
		Pinned:             in.Pinned,
		Source:             src,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return PetFact{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (PetFact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PetFact{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByDog(ctx context.Context, dogID string, filter ListFilter) ([]PetFact, error) {
	return s.repo.ListByDog(ctx, dogID, filter)
}

type UpdateInput struct {
	// Solo status y notes son mutables; el resto del fact es inmutable.
	Status *Status
	Notes  *string
}

// Update cambia status/notes de una observación. Al pasar a resolved
// se sella ResolvedAt; al salir de resolved se limpia.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (PetFact, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return PetFact{}, err
	}

	if in.Status != nil {
		switch *in.Status {
		case StatusActive, StatusMonitoring, StatusResolved:
		default:
			return PetFact{}, ErrInvalidInput
		}

		if *in.Status == StatusResolved && f.Status != StatusResolved {
			t := s.now()
			f.ResolvedAt = &t
		}
		if *in.Status != StatusResolved {
			f.ResolvedAt = nil
		}
		f.Status = *in.Status
	}

	if in.Notes != nil {
		f.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return PetFact{}, err
	}
	return f, nil
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
