package profiles

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/shared/server/middleware"
	"resume-composer/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

var entryRoutes = []struct {
	path string
	kind Kind
}{
	{"/education", KindEducation},
	{"/experience", KindExperience},
	{"/projects", KindProject},
	{"/skills", KindSkill},
	{"/certifications", KindCertification},
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.update)
	rg.PATCH("/profile", h.update)

	for _, r := range entryRoutes {
		kind := r.kind
		rg.GET(r.path, func(c *gin.Context) { h.listEntries(c, kind) })
		rg.POST(r.path, func(c *gin.Context) { h.createEntry(c, kind) })
		rg.GET(r.path+"/:id", func(c *gin.Context) { h.getEntry(c, kind) })
		rg.PUT(r.path+"/:id", func(c *gin.Context) { h.replaceEntry(c, kind) })
		rg.PATCH(r.path+"/:id", func(c *gin.Context) { h.patchEntry(c, kind) })
		rg.DELETE(r.path+"/:id", func(c *gin.Context) { h.deleteEntry(c, kind) })
	}
}

func (h *Handler) get(c *gin.Context) {
	out, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) update(c *gin.Context) {
	var in ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) listEntries(c *gin.Context, kind Kind) {
	out, err := h.Svc.ListEntries(c.Request.Context(), middleware.UserIDFromContext(c), kind)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) createEntry(c *gin.Context, kind Kind) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	out, err := h.Svc.CreateEntry(c.Request.Context(), middleware.UserIDFromContext(c), kind, body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Created(c, out)
}

func (h *Handler) getEntry(c *gin.Context, kind Kind) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	out, err := h.Svc.GetEntry(c.Request.Context(), middleware.UserIDFromContext(c), kind, id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) replaceEntry(c *gin.Context, kind Kind) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	out, err := h.Svc.ReplaceEntry(c.Request.Context(), middleware.UserIDFromContext(c), kind, id, body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) patchEntry(c *gin.Context, kind Kind) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	out, err := h.Svc.PatchEntry(c.Request.Context(), middleware.UserIDFromContext(c), kind, id, body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) deleteEntry(c *gin.Context, kind Kind) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteEntry(c.Request.Context(), middleware.UserIDFromContext(c), kind, id); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

const maxEntryBody = 1 << 20

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxEntryBody))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return nil, false
	}
	return body, true
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "Not found.", nil)
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input", verr.Fields)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Not found.", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
