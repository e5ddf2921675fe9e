package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maizeyield/backend/internal/domain"
)

// PostgresRepository implements domain.PredictionLogRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SavePrediction persists a served prediction to PostgreSQL
func (r *PostgresRepository) SavePrediction(ctx context.Context, rec domain.PredictionRecord) error {
	query := `
		INSERT INTO prediction_logs (
			id, state, season, year, area_ha, quality_grade,
			predicted_yield, model_used, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.State, rec.Season, rec.Year, rec.AreaHa, rec.QualityGrade,
		rec.PredictedYield, rec.ModelUsed, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// RecentPredictions retrieves prediction history from PostgreSQL
func (r *PostgresRepository) RecentPredictions(ctx context.Context, from, to time.Time) ([]domain.PredictionRecord, error) {
	query := `
		SELECT id, state, season, year, area_ha, quality_grade,
			   predicted_yield, model_used, created_at
		FROM prediction_logs
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var results []domain.PredictionRecord
	for rows.Next() {
		var rec domain.PredictionRecord
		err := rows.Scan(
			&rec.ID, &rec.State, &rec.Season, &rec.Year, &rec.AreaHa, &rec.QualityGrade,
			&rec.PredictedYield, &rec.ModelUsed, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prediction row: %w", err)
		}
		results = append(results, rec)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
