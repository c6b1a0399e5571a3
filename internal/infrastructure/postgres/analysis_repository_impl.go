package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	"github.com/hrushireddy/tyredetect-api/internal/domain/repository"
)

type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

func (r *AnalysisRepository) Create(a *entity.Analysis) error {
	ctx := context.Background()
	details, err := json.Marshal(a.Details)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO analyses (user_id, image, prediction, probability, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.UserID, a.Image, a.Prediction, a.Probability, details)

	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *AnalysisRepository) ListRecent(userID string, limit int) ([]*entity.Analysis, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, image, prediction, probability, details, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Analysis
	for rows.Next() {
		a := &entity.Analysis{}
		var details []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.Image, &a.Prediction,
			&a.Probability, &details, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(details, &a.Details); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MonthlyBuckets groups by extracted (year, month) rather than a formatted
// string; label formatting belongs to the handlers.
func (r *AnalysisRepository) MonthlyBuckets(userID string, lastN int) ([]entity.MonthlyBucket, error) {
	ctx := context.Background()
	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       EXTRACT(MONTH FROM created_at)::int AS month,
		       COUNT(*) FILTER (WHERE prediction = 'Good')::int AS pass,
		       COUNT(*) FILTER (WHERE prediction <> 'Good')::int AS fail,
		       AVG(probability * 100) AS avg_confidence
		FROM analyses
		WHERE user_id = $1
		GROUP BY 1, 2
		ORDER BY 1 DESC, 2 DESC
	`
	args := []any{userID}
	if lastN > 0 {
		query += ` LIMIT $2`
		args = append(args, lastN)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.MonthlyBucket
	for rows.Next() {
		var b entity.MonthlyBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Pass, &b.Fail, &b.AvgConfidence); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) CountByPrediction(userID string) (map[string]int, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT prediction, COUNT(*)::int
		FROM analyses
		WHERE user_id = $1
		GROUP BY prediction
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		out[label] = count
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) Totals(userID string) (int, int, error) {
	ctx := context.Background()
	var total, good int
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)::int,
		       COUNT(*) FILTER (WHERE prediction = 'Good')::int
		FROM analyses
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&total, &good); err != nil {
		return 0, 0, err
	}
	return total, good, nil
}

var _ repository.AnalysisRepository = (*AnalysisRepository)(nil)
