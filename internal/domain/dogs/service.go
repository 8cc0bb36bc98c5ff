package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dog not found")
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
	Name        string
	Breed       string
	Sex         string
	BirthDate   *time.Time
	Weight      float64
	WeightUnit  string
	Allergies   []string
	Medications []Medication
	Conditions  []string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Dog, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Dog{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Dog{}, ErrInvalidInput
	}

	sex := Sex(strings.TrimSpace(in.Sex))
	if sex == "" {
		sex = SexUnknown
	}

	now := s.now()
	d := Dog{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         sex,
		BirthDate:   in.BirthDate,
		Weight:      in.Weight,
		WeightUnit:  strings.TrimSpace(in.WeightUnit),
		Allergies:   cleanList(in.Allergies),
		Medications: cleanMedications(in.Medications),
		Conditions:  cleanList(in.Conditions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Breed       *string
	Sex         *string
	Weight      *float64
	WeightUnit  *string
	Allergies   *[]string
	Medications *[]Medication
	Conditions  *[]string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Dog{}, ErrInvalidInput
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		d.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.Weight != nil {
		d.Weight = *in.Weight
	}
	if in.WeightUnit != nil {
		d.WeightUnit = strings.TrimSpace(*in.WeightUnit)
	}
	if in.Allergies != nil {
		d.Allergies = cleanList(*in.Allergies)
	}
	if in.Medications != nil {
		d.Medications = cleanMedications(*in.Medications)
	}
	if in.Conditions != nil {
		d.Conditions = cleanList(*in.Conditions)
	}

	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

// OwnerOf expone el ownerUserID de un perro.
// Se usa desde otros módulos para autorizar sin duplicar lookups.
func (s *Service) OwnerOf(ctx context.Context, dogID string) (string, error) {
	d, err := s.GetByID(ctx, dogID)
	if err != nil {
		return "", err
	}
	return d.OwnerUserID, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func cleanMedications(in []Medication) []Medication {
	out := make([]Medication, 0, len(in))
	for _, m := range in {
		m.Name = strings.TrimSpace(m.Name)
		m.Dosage = strings.TrimSpace(m.Dosage)
		if m.Name == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
