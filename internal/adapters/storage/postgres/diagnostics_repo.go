package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-ai-context/internal/domain/diagnostics"
)

type DiagnosticsRepo struct {
	db *sql.DB
}

func NewDiagnosticsRepo(db *sql.DB) *DiagnosticsRepo {
	return &DiagnosticsRepo{db: db}
}

func (r *DiagnosticsRepo) Create(ctx context.Context, rec diagnostics.Record) error {
	findings, err := toJSONB(rec.Findings)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO diagnostic_records (
			id, dog_id,
			kind, assessment, findings,
			performed_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rec.ID,
		rec.DogID,
		string(rec.Kind),
		rec.Assessment,
		findings,
		rec.PerformedAt,
		rec.CreatedAt,
	)
	return err
}

func (r *DiagnosticsRepo) ListRecent(ctx context.Context, dogID string, since time.Time) ([]diagnostics.Record, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, dog_id,
			kind, assessment, findings,
			performed_at, created_at
		FROM diagnostic_records
		WHERE dog_id = $1 AND performed_at >= $2
		ORDER BY performed_at DESC
	`, dogID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]diagnostics.Record, 0)
	for rows.Next() {
		var rec diagnostics.Record
		var kind string
		var findings []byte

		if err := rows.Scan(
			&rec.ID,
			&rec.DogID,
			&kind,
			&rec.Assessment,
			&findings,
			&rec.PerformedAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		rec.Kind = diagnostics.Kind(kind)
		if err := fromJSONB(findings, &rec.Findings); err != nil {
			return nil, err
		}

		out = append(out, rec)
	}
	return out, rows.Err()
}
