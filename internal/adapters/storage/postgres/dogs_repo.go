package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-ai-context/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	allergies, err := toJSONB(d.Allergies)
	if err != nil {
		return err
	}
	medications, err := toJSONB(d.Medications)
	if err != nil {
		return err
	}
	conditions, err := toJSONB(d.Conditions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dogs (
			id, owner_user_id,
			name, breed, sex,
			birth_date, weight, weight_unit,
			allergies, medications, conditions,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		d.ID,
		d.OwnerUserID,
		d.Name,
		d.Breed,
		string(d.Sex),
		d.BirthDate,
		d.Weight,
		d.WeightUnit,
		allergies,
		medications,
		conditions,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	allergies, err := toJSONB(d.Allergies)
	if err != nil {
		return err
	}
	medications, err := toJSONB(d.Medications)
	if err != nil {
		return err
	}
	conditions, err := toJSONB(d.Conditions)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs SET
			name = $2, breed = $3, sex = $4,
			birth_date = $5, weight = $6, weight_unit = $7,
			allergies = $8, medications = $9, conditions = $10,
			updated_at = $11
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Breed,
		string(d.Sex),
		d.BirthDate,
		d.Weight,
		d.WeightUnit,
		allergies,
		medications,
		conditions,
		d.UpdatedAt,
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

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, breed, sex,
			birth_date, weight, weight_unit,
			allergies, medications, conditions,
			created_at, updated_at
		FROM dogs
		WHERE id = $1
	`, id)

	d, err := scanDog(row)
	if err == sql.ErrNoRows {
		return dogs.Dog{}, ErrNotFound
	}
	return d, err
}

func (r *DogsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, breed, sex,
			birth_date, weight, weight_unit,
			allergies, medications, conditions,
			created_at, updated_at
		FROM dogs
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row rowScanner) (dogs.Dog, error) {
	var d dogs.Dog
	var sex string
	var birthDate sql.NullTime
	var allergies, medications, conditions []byte

	if err := row.Scan(
		&d.ID,
		&d.OwnerUserID,
		&d.Name,
		&d.Breed,
		&sex,
		&birthDate,
		&d.Weight,
		&d.WeightUnit,
		&allergies,
		&medications,
		&conditions,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}

	d.Sex = dogs.Sex(sex)
	if birthDate.Valid {
		t := birthDate.Time
		d.BirthDate = &t
	}

	if err := fromJSONB(allergies, &d.Allergies); err != nil {
		return dogs.Dog{}, err
	}
	if err := fromJSONB(medications, &d.Medications); err != nil {
		return dogs.Dog{}, err
	}
	if err := fromJSONB(conditions, &d.Conditions); err != nil {
		return dogs.Dog{}, err
	}

	return d, nil
}
