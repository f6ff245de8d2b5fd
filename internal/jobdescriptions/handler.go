package jobdescriptions

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/shared/server/middleware"
	"resume-composer/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job description routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-descriptions", h.create)
	rg.GET("/job-descriptions", h.list)
	rg.GET("/job-descriptions/:id", h.get)
	rg.PUT("/job-descriptions/:id", func(c *gin.Context) { h.update(c, true) })
	rg.PATCH("/job-descriptions/:id", func(c *gin.Context) { h.update(c, false) })
	rg.DELETE("/job-descriptions/:id", h.delete)
}

type createRequest struct {
	RawText string  `json:"raw_text"`
	Title   *string `json:"title"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	in, ok := bindIngest(c)
	if !ok {
		return
	}

	jd, err := h.Svc.Ingest(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.JobDescriptionIDKey, strconv.FormatInt(jd.ID, 10))
	respond.Created(c, toResponse(jd))
}

func bindIngest(c *gin.Context) (IngestInput, bool) {
	var in IngestInput
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return in, false
		}
		in.RawText = req.RawText
		in.Title = req.Title
		return in, true
	}

	in.RawText = c.PostForm("raw_text")
	if title, ok := c.GetPostForm("title"); ok {
		in.Title = &title
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, true
	case err != nil:
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read upload", nil)
		return in, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return in, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return in, false
	}
	in.FileName = fileHeader.Filename
	in.FileData = data
	return in, true
}

func (h *Handler) list(c *gin.Context) {
	jds, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]Response, 0, len(jds))
	for _, jd := range jds {
		resp = append(resp, toResponse(jd))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	jd, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toResponse(jd))
}

func (h *Handler) update(c *gin.Context, replace bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	jd, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in, replace)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toResponse(jd))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusNotFound, "not_found", messages[ErrNotFound], nil)
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	var (
		verr *ValidationError
		xerr *ExtractionError
	)
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input", verr.Fields)
	case errors.As(err, &xerr):
		respond.Error(c, http.StatusBadRequest, "validation_error", xerr.Error(), nil)
	case errors.Is(err, ErrMissingInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", messages[ErrMissingInput], nil)
	case errors.Is(err, ErrUnsupportedFileType):
		respond.Error(c, http.StatusBadRequest, "unsupported_file_type", messages[ErrUnsupportedFileType], nil)
	case errors.Is(err, ErrEmptyContent):
		respond.Error(c, http.StatusBadRequest, "empty_content", messages[ErrEmptyContent], nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", messages[ErrNotFound], nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
