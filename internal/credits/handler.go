package credits

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// Handler exposes credit endpoints.
type Handler struct {
	Svc *Service
	// DevGrant is the amount added by the dev grant route when the request names none.
	DevGrant int
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, devGrant int) *Handler {
	return &Handler{Svc: svc, DevGrant: devGrant}
}

// RegisterRoutes attaches credit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits", h.getCredits)
}

// RegisterDevRoutes attaches dev-only credit routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/credits/grant", h.grant)
}

type accountResponse struct {
	Plan     string `json:"plan"`
	Credits  int    `json:"credits"`
	Licensed bool   `json:"licensed"`
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{Plan: a.Plan, Credits: a.Credits, Licensed: Licensed(a)}
}

func (h *Handler) getCredits(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to fetch credits")
		return
	}
	respond.OK(c, toAccountResponse(a))
}

type grantRequest struct {
	Credits int `json:"credits"`
}

func (h *Handler) grant(c *gin.Context) {
	req := grantRequest{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON", nil)
			return
		}
	}
	n := req.Credits
	if n == 0 {
		n = h.DevGrant
	}
	a, err := h.Svc.Grant(c.Request.Context(), middleware.UserIDFromContext(c), n)
	if err != nil {
		h.fail(c, err, "failed to grant credits")
		return
	}
	respond.OK(c, toAccountResponse(a))
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, ErrUnavailable):
		respond.Error(c, http.StatusBadGateway, "balance_unavailable", "balance service unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
