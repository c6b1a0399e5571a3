package repository

import "github.com/hrushireddy/tyredetect-api/internal/domain/entity"

// AnalysisRepository defines the interface for inspection-record persistence
// and the aggregation queries backing the reporting endpoints.
type AnalysisRepository interface {
	Create(a *entity.Analysis) error

	// ListRecent returns the owner's records newest first, at most limit.
	ListRecent(userID string, limit int) ([]*entity.Analysis, error)

	// MonthlyBuckets groups the owner's records by calendar year+month,
	// most recent bucket first. lastN <= 0 returns every bucket.
	MonthlyBuckets(userID string, lastN int) ([]entity.MonthlyBucket, error)

	// CountByPrediction returns record counts keyed by prediction label.
	CountByPrediction(userID string) (map[string]int, error)

	// Totals returns the overall and passing record counts for the owner.
	Totals(userID string) (total int, good int, err error)
}
