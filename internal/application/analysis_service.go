package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	repo "github.com/hrushireddy/tyredetect-api/internal/domain/repository"
	"github.com/hrushireddy/tyredetect-api/internal/inference"
)

const historyLimit = 50
const trendMonths = 6

// Classifier is the narrow slice of the inference client the service needs.
type Classifier interface {
	Classify(ctx context.Context, image []byte, filename, contentType string) (*inference.Result, error)
}

// AnalysisService runs the predict pipeline (relay, derive, persist) and the
// reporting queries behind history/analytics/stats.
type AnalysisService struct {
	Repo   repo.AnalysisRepository
	Relay  Classifier
	Logger *logrus.Logger
}

func NewAnalysisService(r repo.AnalysisRepository, relay Classifier, logger *logrus.Logger) *AnalysisService {
	return &AnalysisService{Repo: r, Relay: relay, Logger: logger}
}

// DeriveDetails maps a prediction label onto the six fixed sub-assessments.
// The table is a deliberate lookup keyed on the label alone, not an
// independent per-attribute measurement; downstream views depend on these
// exact values.
func DeriveDetails(prediction string) entity.AnalysisDetails {
	if prediction == entity.PredictionGood {
		return entity.AnalysisDetails{
			Wear:  entity.SubScore{Score: 85, Status: "Good"},
			Cuts:  entity.SubScore{Score: 92, Status: "Good"},
			Tread: entity.SubScore{Score: 78, Status: "Fair"},
			Bulge: entity.SubScore{Score: 95, Status: "Good"},
			Aging: entity.SubScore{Score: 83, Status: "Good"},
			Depth: entity.SubScore{Score: 76, Status: "Fair"},
		}
	}
	return entity.AnalysisDetails{
		Wear:  entity.SubScore{Score: 40, Status: "Poor"},
		Cuts:  entity.SubScore{Score: 45, Status: "Poor"},
		Tread: entity.SubScore{Score: 35, Status: "Poor"},
		Bulge: entity.SubScore{Score: 30, Status: "Poor"},
		Aging: entity.SubScore{Score: 40, Status: "Poor"},
		Depth: entity.SubScore{Score: 35, Status: "Poor"},
	}
}

// Predict relays the image to the classifier and records the outcome as one
// immutable analysis owned by userID.
func (s *AnalysisService) Predict(ctx context.Context, userID string, image []byte, filename, contentType string) (*entity.Analysis, error) {
	res, err := s.Relay.Classify(ctx, image, filename, contentType)
	if err != nil {
		return nil, err
	}

	a := &entity.Analysis{
		UserID:      userID,
		Image:       image,
		Prediction:  res.Prediction,
		Probability: res.Probability,
		Details:     DeriveDetails(res.Prediction),
	}
	if err := s.Repo.Create(a); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("persist analysis failed")
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"analysis":   a.ID,
			"prediction": a.Prediction,
		}).Info("analysis recorded")
	}
	return a, nil
}

// History returns the 50 most recent records plus the six most recent
// monthly buckets, oldest bucket first.
func (s *AnalysisService) History(userID string) ([]*entity.Analysis, []entity.MonthlyBucket, error) {
	records, err := s.Repo.ListRecent(userID, historyLimit)
	if err != nil {
		return nil, nil, err
	}
	buckets, err := s.Repo.MonthlyBuckets(userID, trendMonths)
	if err != nil {
		return nil, nil, err
	}
	reverse(buckets)
	return records, buckets, nil
}

// Analytics returns every monthly bucket ascending plus the good/poor
// category breakdown.
func (s *AnalysisService) Analytics(userID string) ([]entity.MonthlyBucket, map[string]int, error) {
	buckets, err := s.Repo.MonthlyBuckets(userID, 0)
	if err != nil {
		return nil, nil, err
	}
	reverse(buckets)
	counts, err := s.Repo.CountByPrediction(userID)
	if err != nil {
		return nil, nil, err
	}
	return buckets, counts, nil
}

// Stats returns the overall pass/fail tallies for the dashboard header.
func (s *AnalysisService) Stats(userID string) (total, good, bad int, err error) {
	total, good, err = s.Repo.Totals(userID)
	if err != nil {
		return 0, 0, 0, err
	}
	return total, good, total - good, nil
}

func reverse(b []entity.MonthlyBucket) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
