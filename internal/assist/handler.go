package assist

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/document"
	"resume-studio/internal/session"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// Handler exposes writing-assistant endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assist/summary", h.summary)
	rg.POST("/assist/experiences/:id/description", h.description)
	rg.POST("/assist/cover-letter", h.coverLetter)
}

func (h *Handler) summary(c *gin.Context) {
	sess, err := h.Svc.Summary(c.Request.Context(), middleware.UserIDFromContext(c))
	h.respond(c, sess, err)
}

func (h *Handler) description(c *gin.Context) {
	sess, err := h.Svc.ImproveDescription(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	h.respond(c, sess, err)
}

func (h *Handler) coverLetter(c *gin.Context) {
	sess, err := h.Svc.CoverLetter(c.Request.Context(), middleware.UserIDFromContext(c))
	h.respond(c, sess, err)
}

func (h *Handler) respond(c *gin.Context, sess session.Session, err error) {
	if err == nil {
		respond.OK(c, gin.H{
			"document":  sess.Document,
			"updatedAt": sess.UpdatedAt,
		})
		return
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "assist_unavailable", "writing assistant is not configured", nil)
	case errors.Is(err, ErrFailed), errors.Is(err, document.ErrInvalidDocument):
		respond.Error(c, http.StatusBadGateway, "assist_failed", "the writing assistant could not produce text; your document was not changed", nil)
	case errors.Is(err, ErrNothingToImprove):
		respond.Error(c, http.StatusBadRequest, "validation_error", "description is empty", nil)
	case errors.Is(err, document.ErrItemNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "experience not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "assist request failed", nil)
	}
}
