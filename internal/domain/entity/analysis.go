package entity

import (
	"time"
)

// Prediction labels returned by the inference service.
const (
	PredictionGood = "Good"
	PredictionBad  = "Bad"
)

// SubScore is one scored attribute of a tyre inspection.
type SubScore struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// AnalysisDetails holds the six per-attribute assessments derived from the
// prediction label. Serialized as-is into the analyses.details jsonb column
// and onto the wire.
type AnalysisDetails struct {
	Wear  SubScore `json:"wear"`
	Cuts  SubScore `json:"cuts"`
	Tread SubScore `json:"tread"`
	Bulge SubScore `json:"bulge"`
	Aging SubScore `json:"aging"`
	Depth SubScore `json:"depth"`
}

// Analysis is one immutable inspection record. Ownership never changes and
// the record is never mutated after creation.
type Analysis struct {
	ID          string
	UserID      string
	Image       []byte
	Prediction  string
	Probability float64
	Details     AnalysisDetails
	CreatedAt   time.Time
}

// IsPass reports whether the prediction counts as a passing inspection.
func (a *Analysis) IsPass() bool {
	return a.Prediction == PredictionGood
}

// MonthlyBucket is one calendar-month aggregate of a user's analyses.
// Year and month stay numeric here; "YYYY-MM" formatting happens at the
// presentation boundary.
type MonthlyBucket struct {
	Year          int
	Month         int
	Pass          int
	Fail          int
	AvgConfidence float64 // average probability scaled to 0-100
}
