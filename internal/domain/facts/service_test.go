package facts

import (
	"context"
	"errors"
	"testing"
	"time"
)

// repo en memoria solo para estos tests
type testFactRepo struct {
	byID map[string]PetFact
}

func newTestFactRepo() *testFactRepo {
	return &testFactRepo{byID: map[string]PetFact{}}
}

func (r *testFactRepo) Create(_ context.Context, f PetFact) error {
	r.byID[f.ID] = f
	return nil
}

func (r *testFactRepo) Update(_ context.Context, f PetFact) error {
	if _, ok := r.byID[f.ID]; !ok {
		return errors.New("fact not found")
	}
	r.byID[f.ID] = f
	return nil
}

func (r *testFactRepo) GetByID(_ context.Context, id string) (PetFact, error) {
	f, ok := r.byID[id]
	if !ok {
		return PetFact{}, errors.New("fact not found")
	}
	return f, nil
}

func (r *testFactRepo) ListByDog(_ context.Context, dogID string, _ ListFilter) ([]PetFact, error) {
	out := []PetFact{}
	for _, f := range r.byID {
		if f.DogID == dogID {
			out = append(out, f)
		}
	}
	return out, nil
}

func newTestFactService() (*Service, *testFactRepo) {
	repo := newTestFactRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return scorerNow }
	return svc, repo
}

func TestFactService_CreateAppliesDefaults(t *testing.T) {
	svc, _ := newTestFactService()

	f, err := svc.Create(context.Background(), "dog-1", CreateInput{Fact: "  vomiting after meals  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if f.Fact != "vomiting after meals" {
		t.Fatalf("fact must be trimmed, got %q", f.Fact)
	}
	if f.Severity != SeverityMild {
		t.Fatalf("expected default severity mild, got %q", f.Severity)
	}
	if f.Status != StatusActive {
		t.Fatalf("expected default status active, got %q", f.Status)
	}
	if f.Source != SourceManual {
		t.Fatalf("expected default source manual, got %q", f.Source)
	}
	if !f.OccurredAt.Equal(f.CreatedAt) {
		t.Fatalf("missing occurredAt must fall back to createdAt")
	}
	if f.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestFactService_CreateValidation(t *testing.T) {
	svc, _ := newTestFactService()

	if _, err := svc.Create(context.Background(), "", CreateInput{Fact: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty dogID must be rejected, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "dog-1", CreateInput{Fact: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank fact must be rejected, got %v", err)
	}
}

func TestFactService_CreateKeepsExplicitFields(t *testing.T) {
	svc, _ := newTestFactService()

	occurred := scorerNow.AddDate(0, 0, -7)
	f, err := svc.Create(context.Background(), "dog-1", CreateInput{
		Fact:       "limping",
		Severity:   SeveritySevere,
		Status:     StatusMonitoring,
		OccurredAt: &occurred,
		Tags:       []string{" limping ", "", "leg"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if f.Severity != SeveritySevere || f.Status != StatusMonitoring {
		t.Fatalf("explicit severity/status must be preserved")
	}
	if !f.OccurredAt.Equal(occurred) {
		t.Fatalf("explicit occurredAt must be preserved")
	}
	if len(f.Tags) != 2 || f.Tags[0] != "limping" || f.Tags[1] != "leg" {
		t.Fatalf("tags must be trimmed and blanks dropped, got %v", f.Tags)
	}
}

func TestFactService_UpdateResolvedSealsTimestamp(t *testing.T) {
	svc, _ := newTestFactService()

	f, err := svc.Create(context.Background(), "dog-1", CreateInput{Fact: "limping"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resolved := StatusResolved
	got, err := svc.Update(context.Background(), f.ID, UpdateInput{Status: &resolved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != StatusResolved {
		t.Fatalf("expected resolved status, got %q", got.Status)
	}
	if got.ResolvedAt == nil || !got.ResolvedAt.Equal(scorerNow) {
		t.Fatalf("resolving must seal resolvedAt with the service clock")
	}

	// Reabrir limpia resolvedAt
	active := StatusActive
	got, err = svc.Update(context.Background(), f.ID, UpdateInput{Status: &active})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ResolvedAt != nil {
		t.Fatalf("reopening must clear resolvedAt")
	}
}

func TestFactService_UpdateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestFactService()

	f, err := svc.Create(context.Background(), "dog-1", CreateInput{Fact: "limping"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bogus := Status("archived")
	if _, err := svc.Update(context.Background(), f.ID, UpdateInput{Status: &bogus}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}
}

func TestFactService_UpdateNotesOnly(t *testing.T) {
	svc, _ := newTestFactService()

	f, err := svc.Create(context.Background(), "dog-1", CreateInput{Fact: "limping", Notes: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	notes := "  worse after walks  "
	got, err := svc.Update(context.Background(), f.ID, UpdateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Notes != "worse after walks" {
		t.Fatalf("notes must be trimmed, got %q", got.Notes)
	}
	if got.Status != StatusActive {
		t.Fatalf("status must be untouched when only notes change")
	}
}
