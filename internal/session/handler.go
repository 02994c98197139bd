package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/document"
	"resume-studio/internal/preview"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// Handler exposes the editor session endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", h.get)
	rg.DELETE("/session", h.reset)
	rg.PUT("/session/document", h.replace)
	rg.PATCH("/session/document", h.patch)
	rg.PUT("/session/language", h.language)
	rg.POST("/session/sections/:key/move", h.moveSection)
	rg.POST("/session/document/:collection", h.addItem)
	rg.DELETE("/session/document/:collection/:id", h.removeItem)
	rg.POST("/session/document/:collection/:id/move", h.moveItem)
}

type sessionResponse struct {
	ID        string            `json:"id"`
	Document  document.Document `json:"document"`
	Language  string            `json:"language"`
	View      preview.State     `json:"view"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func toResponse(s Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Document:  s.Document,
		Language:  s.Language,
		View:      s.visible(),
		UpdatedAt: s.UpdatedAt,
	}
}

func (h *Handler) get(c *gin.Context) {
	sess, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load session")
		return
	}
	respond.OK(c, toResponse(sess))
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.Svc.Reset(c.Request.Context(), middleware.UserIDFromContext(c)); err != nil {
		writeError(c, err, "failed to reset session")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) replace(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document body is required", nil)
		return
	}
	sess, err := h.Svc.ReplaceDocument(c.Request.Context(), middleware.UserIDFromContext(c), raw)
	if err != nil {
		writeError(c, err, "failed to replace document")
		return
	}
	respond.OK(c, toResponse(sess))
}

func (h *Handler) patch(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "patch must be a non-empty JSON object", nil)
		return
	}
	sess, err := h.Svc.PatchDocument(c.Request.Context(), middleware.UserIDFromContext(c), patch)
	if err != nil {
		writeError(c, err, "failed to update document")
		return
	}
	respond.OK(c, toResponse(sess))
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h *Handler) language(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON", nil)
		return
	}
	sess, err := h.Svc.SetLanguage(c.Request.Context(), middleware.UserIDFromContext(c), req.Language)
	if err != nil {
		writeError(c, err, "failed to set language")
		return
	}
	respond.OK(c, toResponse(sess))
}

type moveRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) moveSection(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON", nil)
		return
	}
	sess, err := h.Svc.MoveSection(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("key"), req.Delta)
	if err != nil {
		writeError(c, err, "failed to move section")
		return
	}
	respond.OK(c, toResponse(sess))
}

func (h *Handler) addItem(c *gin.Context) {
	sess, id, err := h.Svc.AddItem(c.Request.Context(), middleware.UserIDFromContext(c), document.Collection(c.Param("collection")))
	if err != nil {
		writeError(c, err, "failed to add item")
		return
	}
	respond.Created(c, gin.H{
		"id":      id,
		"session": toResponse(sess),
	})
}

func (h *Handler) removeItem(c *gin.Context) {
	sess, err := h.Svc.RemoveItem(c.Request.Context(), middleware.UserIDFromContext(c),
		document.Collection(c.Param("collection")), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to remove item")
		return
	}
	respond.OK(c, toResponse(sess))
}

func (h *Handler) moveItem(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON", nil)
		return
	}
	sess, err := h.Svc.MoveItem(c.Request.Context(), middleware.UserIDFromContext(c),
		document.Collection(c.Param("collection")), c.Param("id"), req.Delta)
	if err != nil {
		writeError(c, err, "failed to move item")
		return
	}
	respond.OK(c, toResponse(sess))
}

func writeError(c *gin.Context, err error, msg string) {
	var verr *document.ValidationError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "document is invalid", verr.Problems)
	case errors.Is(err, document.ErrInvalidDocument),
		errors.Is(err, document.ErrUnknownCollection),
		errors.Is(err, document.ErrUnknownField):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, document.ErrItemNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
