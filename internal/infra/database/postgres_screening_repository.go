// internal/infra/database/postgres_screening_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mental_screening_service/internal/domain/screening"
)

// ErrRecordNotFound is returned when a screening record does not exist.
var ErrRecordNotFound = fmt.Errorf("screening record not found")

type PostgresScreeningRepository struct {
	db *sql.DB
}

func NewPostgresScreeningRepository(db *sql.DB) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{db: db}
}

func (r *PostgresScreeningRepository) Insert(ctx context.Context, rec *screening.Record) error {
	query := `INSERT INTO screenings
               (citizen_id, fullname, facility_code, stress_score, q1, q2, q3, q8_total, emergency, risk_level, recommendation)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		rec.CitizenID, rec.FullName, rec.FacilityCode, rec.StressScore,
		rec.Q1, rec.Q2, rec.Q3, rec.Q8Total, rec.Emergency,
		rec.RiskLevel, rec.Recommendation,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting screening record: %w", err)
	}
	return nil
}

func (r *PostgresScreeningRepository) GetByID(ctx context.Context, id int64) (*screening.Record, error) {
	query := selectColumns + ` FROM screenings WHERE id = $1`
	rec := screening.Record{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(scanTargets(&rec)...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("error getting screening record by ID: %w", err)
	}
	return &rec, nil
}

func (r *PostgresScreeningRepository) List(ctx context.Context, limit int) ([]*screening.Record, error) {
	query := selectColumns + ` FROM screenings ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing screening records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *PostgresScreeningRepository) ListSince(ctx context.Context, since time.Time) ([]*screening.Record, error) {
	query := selectColumns + ` FROM screenings WHERE created_at >= $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error listing screening records since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

const selectColumns = `SELECT id, citizen_id, fullname, facility_code, stress_score, q1, q2, q3, q8_total, emergency, risk_level, recommendation, created_at`

func scanTargets(rec *screening.Record) []any {
	return []any{
		&rec.ID, &rec.CitizenID, &rec.FullName, &rec.FacilityCode, &rec.StressScore,
		&rec.Q1, &rec.Q2, &rec.Q3, &rec.Q8Total, &rec.Emergency,
		&rec.RiskLevel, &rec.Recommendation, &rec.CreatedAt,
	}
}

func collectRecords(rows *sql.Rows) ([]*screening.Record, error) {
	var records []*screening.Record
	for rows.Next() {
		rec := screening.Record{}
		if err := rows.Scan(scanTargets(&rec)...); err != nil {
			return nil, fmt.Errorf("error scanning screening record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating screening records: %w", err)
	}
	return records, nil
}
