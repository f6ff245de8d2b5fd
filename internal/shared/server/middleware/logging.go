package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	JobDescriptionIDKey  = "jobDescriptionId"
	GeneratedResumeIDKey = "generatedResumeId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		userID, _ := c.Get(userIDKey)
		jobDescriptionID, _ := c.Get(JobDescriptionIDKey)
		generatedResumeID, _ := c.Get(GeneratedResumeIDKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":          RequestIDFromContext(c),
			"method":              c.Request.Method,
			"path":                c.Request.URL.Path,
			"route":               c.FullPath(),
			"status":              c.Writer.Status(),
			"duration_ms":         float64(latency.Microseconds()) / 1000.0,
			"user_id":             userID,
			"job_description_id":  jobDescriptionID,
			"generated_resume_id": generatedResumeID,
			"client_ip":           c.ClientIP(),
			"user_agent":          c.Request.UserAgent(),
		})
	}
}
