package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hrushireddy/tyredetect-api/internal/application"
	"github.com/hrushireddy/tyredetect-api/internal/domain/entity"
	"github.com/hrushireddy/tyredetect-api/internal/inference"
	"github.com/hrushireddy/tyredetect-api/internal/interface/middleware"
	"github.com/hrushireddy/tyredetect-api/pkg/response"
)

// AnalysisHandler exposes the predict pipeline and the reporting endpoints.
type AnalysisHandler struct {
	Svc       *application.AnalysisService
	MaxUpload int64
	Logger    *logrus.Logger
}

// NewAnalysisHandler builds the handler. maxUpload <= 0 falls back to the
// relay's default ceiling.
func NewAnalysisHandler(svc *application.AnalysisService, maxUpload int64, logger *logrus.Logger) *AnalysisHandler {
	if maxUpload <= 0 {
		maxUpload = inference.MaxImageBytes
	}
	return &AnalysisHandler{Svc: svc, MaxUpload: maxUpload, Logger: logger}
}

func monthLabel(b entity.MonthlyBucket) string {
	return fmt.Sprintf("%04d-%02d", b.Year, b.Month)
}

// Predict POST /predict (multipart field "image")
func (h *AnalysisHandler) Predict(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer func() { _ = file.Close() }()

	// Read one byte past the ceiling so oversized uploads are caught here
	// instead of buffering the whole thing.
	image, err := io.ReadAll(io.LimitReader(file, h.MaxUpload+1))
	if err != nil {
		h.Logger.WithError(err).Error("reading upload failed")
		response.Err(c, http.StatusInternalServerError, "Failed to process image")
		return
	}

	contentType := header.Header.Get("Content-Type")
	a, err := h.Svc.Predict(c.Request.Context(), uid, image, header.Filename, contentType)
	if err != nil {
		h.writePredictError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction":  a.Prediction,
		"probability": a.Probability,
		"details":     a.Details,
	})
}

func (h *AnalysisHandler) writePredictError(c *gin.Context, err error) {
	var statusErr *inference.StatusError
	switch {
	case errors.Is(err, inference.ErrNotAnImage):
		response.Err(c, http.StatusBadRequest, "Only image files are allowed")
	case errors.Is(err, inference.ErrImageTooLarge):
		response.Err(c, http.StatusBadRequest, "Image file too large")
	case errors.As(err, &statusErr):
		h.Logger.WithField("status", statusErr.Code).Warn("prediction service returned error")
		response.ErrDetails(c, statusErr.Code, "Error from prediction service", statusErr.Detail())
	case errors.Is(err, inference.ErrUnavailable):
		h.Logger.WithError(err).Warn("prediction service unreachable")
		response.Err(c, http.StatusServiceUnavailable, "Prediction service unavailable")
	default:
		h.Logger.WithError(err).Error("prediction failed")
		response.Err(c, http.StatusInternalServerError, "Failed to process image")
	}
}

// History GET /api/history
func (h *AnalysisHandler) History(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	records, buckets, err := h.Svc.History(uid)
	if err != nil {
		h.Logger.WithError(err).Error("history query failed")
		response.Err(c, http.StatusInternalServerError, "Server error fetching history")
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, a := range records {
		status := "FAIL"
		if a.IsPass() {
			status = "PASS"
		}
		items = append(items, gin.H{
			"id":         a.ID,
			"date":       a.CreatedAt.Format("2006-01-02"),
			"status":     status,
			"confidence": int(math.Round(a.Probability * 100)),
			"image":      "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(a.Image),
			"details":    a.Details,
		})
	}

	trends := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		trends = append(trends, gin.H{
			"month":  monthLabel(b),
			"passes": b.Pass,
			"fails":  b.Fail,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": items, "monthlyTrends": trends})
}

// Analytics GET /api/analytics
func (h *AnalysisHandler) Analytics(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	buckets, counts, err := h.Svc.Analytics(uid)
	if err != nil {
		h.Logger.WithError(err).Error("analytics query failed")
		response.Err(c, http.StatusInternalServerError, "Server error fetching analytics")
		return
	}

	trend := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		trend = append(trend, gin.H{
			"date":          monthLabel(b),
			"pass":          b.Pass,
			"fail":          b.Fail,
			"avgConfidence": int(math.Round(b.AvgConfidence)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"history": trend,
		"categoryBreakdown": gin.H{
			"good": counts[entity.PredictionGood],
			"poor": counts[entity.PredictionBad],
		},
	})
}

// Stats GET /stats
func (h *AnalysisHandler) Stats(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	total, good, bad, err := h.Svc.Stats(uid)
	if err != nil {
		h.Logger.WithError(err).Error("stats query failed")
		response.Err(c, http.StatusInternalServerError, "Server error fetching stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalChecked": total,
		"totalScanned": total,
		"goodTyres":    good,
		"badTyres":     bad,
	})
}
