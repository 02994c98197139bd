package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/credits"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/internal/shared/telemetry"
)

type meResponse struct {
	UserID   string           `json:"userId"`
	Guest    bool             `json:"guest"`
	Email    string           `json:"email,omitempty"`
	Name     string           `json:"name,omitempty"`
	Licensed bool             `json:"licensed"`
	Account  *credits.Account `json:"account,omitempty"`
}

// me describes the caller. Signed-in users also get their plan and balance;
// guests never hold credits so the lookup is skipped.
func me(cs *credits.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.IdentityFromContext(c)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials", nil)
			return
		}
		resp := meResponse{UserID: id.UserID, Guest: id.Guest, Email: id.Email, Name: id.Name}
		if cs != nil && !id.Guest {
			acct, err := cs.Get(c.Request.Context(), id.UserID)
			if err != nil {
				telemetry.Warn("me.account_lookup_failed", map[string]any{"user_id": id.UserID, "error": err})
			} else {
				resp.Account = &acct
				resp.Licensed = credits.Licensed(acct)
			}
		}
		respond.OK(c, resp)
	}
}
