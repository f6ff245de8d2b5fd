package compose

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/shared/server/middleware"
	"resume-composer/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the compose route; mw runs before the handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/compose", append(mw, h.compose)...)
}

type composeRequest struct {
	JobDescriptionID json.RawMessage `json:"job_description_id"`
	Model            string          `json:"model"`
}

const (
	msgIDRequired   = "'job_description_id' is required."
	msgIDNotInteger = "'job_description_id' must be an integer."
)

func (h *Handler) compose(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	id, msg := parseID(req.JobDescriptionID)
	if msg != "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", msg, nil)
		return
	}
	c.Set(middleware.JobDescriptionIDKey, strconv.FormatInt(id, 10))

	res, err := h.Svc.Compose(c.Request.Context(), middleware.UserIDFromContext(c), id, req.Model)
	if err != nil {
		writeError(c, err)
		return
	}
	if res.GeneratedResumeID > 0 {
		c.Set(middleware.GeneratedResumeIDKey, strconv.FormatInt(res.GeneratedResumeID, 10))
	}
	respond.OK(c, gin.H{"generated_content": res.Content})
}

// parseID accepts a JSON integer or a string holding one.
func parseID(raw json.RawMessage) (int64, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, msgIDRequired
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, msgIDNotInteger
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, msgIDRequired
		}
	} else {
		text = string(raw)
	}

	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, msgIDNotInteger
	}
	if id == 0 {
		return 0, msgIDRequired
	}
	return id, ""
}

func writeError(c *gin.Context, err error) {
	var cerr *CompositionError
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "'job_description_id' must be a positive integer.", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found",
			"Job description not found or you do not have permission to access it.", nil)
	case errors.Is(err, ErrProfileMissing):
		respond.Error(c, http.StatusNotFound, "profile_missing", "User profile not found.", nil)
	case errors.Is(err, ErrConfiguration):
		respond.Error(c, http.StatusInternalServerError, "configuration_error", "AI API key not configured in environment.", nil)
	case errors.As(err, &cerr):
		respond.Error(c, http.StatusInternalServerError, "composition_error", cerr.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
