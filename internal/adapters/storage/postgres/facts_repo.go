package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-ai-context/internal/domain/facts"
)

type FactsRepo struct {
	db *sql.DB
}

func NewFactsRepo(db *sql.DB) *FactsRepo {
	return &FactsRepo{db: db}
}

func (r *FactsRepo) Create(ctx context.Context, f facts.PetFact) error {
	tags, err := toJSONB(f.Tags)
	if err != nil {
		return err
	}
	possible, err := toJSONB(f.PossibleConditions)
	if err != nil {
		return err
	}
	recommended, err := toJSONB(f.RecommendedActions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pet_facts (
			id, dog_id,
			fact, category, tags, severity, status,
			occurred_at, created_at, resolved_at,
			notes, possible_conditions, recommended_actions,
			pinned, source
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		f.ID,
		f.DogID,
		f.Fact,
		string(f.Category),
		tags,
		string(f.Severity),
		string(f.Status),
		f.OccurredAt,
		f.CreatedAt,
		f.ResolvedAt,
		f.Notes,
		possible,
		recommended,
		f.Pinned,
		string(f.Source),
	)
	return err
}

func (r *FactsRepo) Update(ctx context.Context, f facts.PetFact) error {
	// Solo status/notes/resolved_at son mutables a nivel dominio.
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_facts SET
			status = $2, notes = $3, resolved_at = $4
		WHERE id = $1
	`,
		f.ID,
		string(f.Status),
		f.Notes,
		f.ResolvedAt,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FactsRepo) GetByID(ctx context.Context, id string) (facts.PetFact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return facts.PetFact{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, dog_id,
			fact, category, tags, severity, status,
			occurred_at, created_at, resolved_at,
			notes, possible_conditions, recommended_actions,
			pinned, source
		FROM pet_facts
		WHERE id = $1
	`, id)

	f, err := scanFact(row)
	if err == sql.ErrNoRows {
		return facts.PetFact{}, ErrNotFound
	}
	return f, err
}

func (r *FactsRepo) ListByDog(ctx context.Context, dogID string, filter facts.ListFilter) ([]facts.PetFact, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, dog_id,
			fact, category, tags, severity, status,
			occurred_at, created_at, resolved_at,
			notes, possible_conditions, recommended_actions,
			pinned, source
		FROM pet_facts
		WHERE dog_id = $1
	`)

	args := []any{dogID}
	argN := 2

	if len(filter.Categories) > 0 {
		placeholders := make([]string, 0, len(filter.Categories))
		for _, c := range filter.Categories {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(c))
			argN++
		}
		sb.WriteString(" AND category IN (" + strings.Join(placeholders, ",") + ")")
	}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(st))
			argN++
		}
		sb.WriteString(" AND status IN (" + strings.Join(placeholders, ",") + ")")
	}

	// q: búsqueda simple en fact + notes
	if strings.TrimSpace(filter.Query) != "" {
		sb.WriteString(fmt.Sprintf(" AND (fact ILIKE $%d OR notes ILIKE $%d)", argN, argN))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]facts.PetFact, 0)
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanFact(row rowScanner) (facts.PetFact, error) {
	var f facts.PetFact
	var category, severity, status, source string
	var resolvedAt sql.NullTime
	var tags, possible, recommended []byte

	if err := row.Scan(
		&f.ID,
		&f.DogID,
		&f.Fact,
		&category,
		&tags,
		&severity,
		&status,
		&f.OccurredAt,
		&f.CreatedAt,
		&resolvedAt,
		&f.Notes,
		&possible,
		&recommended,
		&f.Pinned,
		&source,
	); err != nil {
		return facts.PetFact{}, err
	}

	f.Category = facts.Category(category)
	f.Severity = facts.Severity(severity)
	f.Status = facts.Status(status)
	f.Source = facts.Source(source)

	if resolvedAt.Valid {
		t := resolvedAt.Time
		f.ResolvedAt = &t
	}

	if err := fromJSONB(tags, &f.Tags); err != nil {
		return facts.PetFact{}, err
	}
	if err := fromJSONB(possible, &f.PossibleConditions); err != nil {
		return facts.PetFact{}, err
	}
	if err := fromJSONB(recommended, &f.RecommendedActions); err != nil {
		return facts.PetFact{}, err
	}

	return f, nil
}
