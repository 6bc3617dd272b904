package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prediction-gateway/internal/common/errors"
	"prediction-gateway/internal/common/metrics"
	"prediction-gateway/internal/gateway"
)

// Predict accepts a candidate record as the JSON body and returns the
// normalized prediction or a classified error envelope.
func (s *Server) Predict(c *gin.Context) {
	start := time.Now()

	var record gateway.CandidateRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		record = nil
	}
	if len(record) == 0 {
		s.fail(c, errors.NewNoInputProvidedError(), start)
		return
	}

	value, err := s.gateway.Predict(c.Request.Context(), record)
	if err != nil {
		s.fail(c, err, start)
		return
	}

	metrics.PredictionRequests.WithLabelValues("success").Inc()
	metrics.PredictionDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	s.obs.RecordPrediction(c.Request.Context(), "success")
	s.obs.RecordDuration(c.Request.Context(), time.Since(start), "success")

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"prediction": value,
	})
}

func (s *Server) fail(c *gin.Context, err error, start time.Time) {
	code := errors.CodeOf(err)
	s.logger.Warn("prediction request failed", map[string]interface{}{
		"errorCode": string(code),
		"error":     err.Error(),
	})

	metrics.PredictionRequests.WithLabelValues("error").Inc()
	metrics.PredictionFailures.WithLabelValues(string(code)).Inc()
	metrics.PredictionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
	s.obs.RecordPrediction(c.Request.Context(), "error")
	s.obs.RecordDuration(c.Request.Context(), time.Since(start), "error")

	c.JSON(errors.HTTPStatus(err), gin.H{
		"success": false,
		"error":   errors.UserMessage(err),
	})
}

// Health reports whether the configuration is complete enough to score.
func (s *Server) Health(c *gin.Context) {
	if problems := s.cfg.Problems(); len(problems) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"errors": problems,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"app":     s.cfg.App.Name,
		"version": s.cfg.App.Version,
	})
}

// Home renders the feature input form with configured defaults prefilled.
func (s *Server) Home(c *gin.Context) {
	type formFeature struct {
		Name    string
		Default float64
	}

	features := make([]formFeature, 0, len(s.cfg.Features.Names))
	for _, name := range s.cfg.Features.Names {
		features = append(features, formFeature{
			Name:    name,
			Default: s.cfg.Features.Defaults[name],
		})
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"AppName":  s.cfg.App.Name,
		"Features": features,
	})
}
