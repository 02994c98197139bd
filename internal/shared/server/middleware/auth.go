package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/server/respond"
)

const (
	identityKey = "identity"
	// userIDKey and isGuestKey mirror Identity for code that only sees raw context keys.
	userIDKey  = "userId"
	isGuestKey = "isGuest"

	guestHeader     = "X-Guest-Id"
	guestPrefix     = "guest:"
	maxGuestIDBytes = 64
)

// Identity is the caller resolved by Auth.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Guest  bool
}

// Signed file links carry their own token.
var publicPrefixes = []string{"/api/v1/files/"}

func isPublic(path string) bool {
	if _, ok := quietPaths[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Auth resolves the caller from a bearer token or, failing that, the guest header.
// A present but invalid bearer token is rejected even when a guest header is also sent.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		if isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		id, ok := resolve(c.Request)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid credentials", nil)
			return
		}
		c.Set(identityKey, id)
		c.Set(userIDKey, id.UserID)
		c.Set(isGuestKey, id.Guest)
		c.Next()
	}
}

func resolve(r *http.Request) (Identity, bool) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return Identity{}, false
		}
		claims, err := auth.VerifyJWT(strings.TrimSpace(token))
		if err != nil {
			return Identity{}, false
		}
		return Identity{UserID: claims.Subject, Email: claims.Email, Name: claims.Name}, true
	}

	guest := strings.TrimSpace(r.Header.Get(guestHeader))
	if !validGuestID(guest) {
		return Identity{}, false
	}
	return Identity{UserID: guestPrefix + guest, Guest: true}, true
}

func validGuestID(id string) bool {
	if id == "" || len(id) > maxGuestIDBytes {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// IdentityFromContext returns the caller stored by Auth.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	if c == nil {
		return Identity{}, false
	}
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// UserIDFromContext is the authenticated principal, or "" on public routes.
func UserIDFromContext(c *gin.Context) string {
	if id, ok := IdentityFromContext(c); ok {
		return id.UserID
	}
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// IsGuest reports whether the caller was identified by the guest header.
func IsGuest(c *gin.Context) bool {
	if id, ok := IdentityFromContext(c); ok {
		return id.Guest
	}
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}
