package export

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/artifacts"
	"resume-studio/internal/preview"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/storage/object"
	"resume-studio/internal/shared/server/respond"
)

// Handler exposes export endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches authenticated export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/exports", h.create)
	rg.GET("/exports", h.list)
	rg.GET("/exports/:id", h.get)
	rg.GET("/exports/:id/file", h.file)
	rg.POST("/exports/:id/outcome", h.outcome)
}

// RegisterPublicRoutes attaches the signed file route. It must sit behind a path the auth middleware skips.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/:token", h.signedFile)
}

type createRequest struct {
	Kind string `json:"kind"`
}

type exportResponse struct {
	ID       string `json:"id"`
	Mode     Mode   `json:"mode"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"fileName"`
	Pages    int    `json:"pages"`
	Credits  int    `json:"credits"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	kind, ok := preview.ParseKind(req.Kind)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "kind must be resume or cover_letter", nil)
		return
	}

	res, err := h.Svc.Export(c.Request.Context(), Request{
		Principal:    middleware.UserIDFromContext(c),
		Guest:        middleware.IsGuest(c),
		Kind:         kind,
		Capabilities: DetectCapabilities(c.Request.Header),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.Annotate(c, "export_id", res.Artifact.ID)
	middleware.Annotate(c, "template", res.Artifact.Template)
	middleware.Annotate(c, "delivery_mode", string(res.Mode))
	c.Header("X-Export-Id", res.Artifact.ID)
	c.Header("X-Delivery-Mode", string(res.Mode))
	if res.Mode == ModeDirectDownload {
		c.Header("X-Credits-Remaining", strconv.Itoa(res.Balance.Credits))
		c.Header("Content-Disposition", disposition("attachment", res.Artifact.FileName))
		c.Data(http.StatusOK, pdfMimeType, res.PDF)
		return
	}
	respond.OK(c, exportResponse{
		ID:       res.Artifact.ID,
		Mode:     res.Mode,
		URL:      res.URL,
		FileName: res.Artifact.FileName,
		Pages:    res.Artifact.Pages,
		Credits:  res.Balance.Credits,
	})
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []artifacts.Artifact{}
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, a)
}

func (h *Handler) file(c *gin.Context) {
	a, rc, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()
	stream(c, a, rc, "attachment")
}

func (h *Handler) signedFile(c *gin.Context) {
	a, rc, err := h.Svc.OpenLink(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()
	stream(c, a, rc, "inline")
}

type outcomeRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

func (h *Handler) outcome(c *gin.Context) {
	var req outcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "outcome is required", nil)
		return
	}
	a, fallback, err := h.Svc.ReportOutcome(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.Outcome)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := gin.H{"id": a.ID, "outcome": a.Outcome}
	if fallback != "" {
		resp["mode"] = ModeFallbackOpen
		resp["url"] = fallback
	}
	respond.OK(c, resp)
}

func stream(c *gin.Context, a artifacts.Artifact, rc io.Reader, dispositionType string) {
	c.Header("Content-Disposition", disposition(dispositionType, a.FileName))
	c.Header("Cache-Control", "private, no-store")
	length := a.SizeBytes
	if length <= 0 {
		length = -1
	}
	c.DataFromReader(http.StatusOK, length, a.MimeType, rc, nil)
}

func disposition(kind, name string) string {
	return kind + `; filename="` + name + `"`
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLoginRequired):
		respond.Error(c, http.StatusUnauthorized, "login_required", "sign in to export", nil)
	case errors.Is(err, ErrInsufficientCredits):
		respond.Error(c, http.StatusPaymentRequired, "insufficient_credits", "not enough credits to export", nil)
	case errors.Is(err, ErrExportInProgress):
		respond.Error(c, http.StatusConflict, "export_in_progress", "an export is already running for this session", nil)
	case errors.Is(err, ErrLinkInvalid):
		respond.Error(c, http.StatusNotFound, "not_found", "file link is invalid or expired", nil)
	case errors.Is(err, artifacts.ErrNotFound), errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
	case errors.Is(err, artifacts.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "export belongs to another user", nil)
	case errors.Is(err, artifacts.ErrInvalidOutcome):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported outcome", nil)
	case errors.Is(err, ErrDelivery):
		respond.Error(c, http.StatusBadGateway, "delivery_failed", "export could not be delivered", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "export timed out", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "export_failed", "export failed", nil)
	}
}
