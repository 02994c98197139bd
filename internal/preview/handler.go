package preview

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/document"
	"resume-studio/internal/render"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// Snapshot is what a preview needs from an editor session.
type Snapshot struct {
	Document document.Document
	Language string
	State    State
}

// Source provides session snapshots and zoom updates.
type Source interface {
	Snapshot(ctx context.Context, principal string) (Snapshot, error)
	SetZoom(ctx context.Context, principal string, zoom float64) (State, error)
}

// Handler serves the live preview.
type Handler struct {
	Source    Source
	Registry  *render.Registry
	Watermark Watermark
	Now       func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(src Source, reg *render.Registry, wm Watermark) *Handler {
	return &Handler{Source: src, Registry: reg, Watermark: wm, Now: time.Now}
}

// RegisterRoutes attaches preview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/preview", h.page)
	rg.GET("/preview/state", h.state)
	rg.PUT("/preview/zoom", h.zoom)
}

func (h *Handler) page(c *gin.Context) {
	kind, ok := ParseKind(c.Query("kind"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "kind must be resume or cover_letter", nil)
		return
	}
	snap, err := h.Source.Snapshot(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session", nil)
		return
	}

	middleware.Annotate(c, "template", string(snap.Document.Template))
	labels := render.LabelsFor(snap.Language)
	tree := Build(h.Registry, snap.Document, labels, kind, h.Now())
	out, err := Compose(tree, snap.State, h.Watermark, labels.Lang).HTML()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render preview", nil)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (h *Handler) state(c *gin.Context) {
	snap, err := h.Source.Snapshot(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session", nil)
		return
	}
	respond.OK(c, snap.State)
}

type zoomRequest struct {
	Zoom *float64 `json:"zoom"`
}

func (h *Handler) zoom(c *gin.Context) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Zoom == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "zoom is required", nil)
		return
	}
	state, err := h.Source.SetZoom(c.Request.Context(), middleware.UserIDFromContext(c), *req.Zoom)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update zoom", nil)
		return
	}
	respond.OK(c, state)
}
