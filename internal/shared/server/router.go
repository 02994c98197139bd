package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/assist"
	"resume-studio/internal/credits"
	"resume-studio/internal/export"
	"resume-studio/internal/preview"
	"resume-studio/internal/services/health"
	"resume-studio/internal/session"
	"resume-studio/internal/shared/config"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config         config.Config
	CreditsHandler *credits.Handler
	SessionHandler *session.Handler
	PreviewHandler *preview.Handler
	AssistHandler  *assist.Handler
	ExportHandler  *export.Handler
	Credits        *credits.Service
	Health         *health.Service
	Limiter        *middleware.RateLimiter
}

// Rate limit groups. Exports drive a headless browser and assist calls a paid model, so both are
// limited separately from editor traffic.
const (
	rateGroupDefault = "DEFAULT"
	rateGroupExport  = "EXPORT"
	rateGroupAssist  = "ASSIST"
)

var routeGroups = map[string]string{
	"POST /api/v1/exports":                            rateGroupExport,
	"POST /api/v1/assist/summary":                     rateGroupAssist,
	"POST /api/v1/assist/experiences/:id/description": rateGroupAssist,
	"POST /api/v1/assist/cover-letter":                rateGroupAssist,
}

func rateLimitRules() map[string]middleware.RateLimitRule {
	return map[string]middleware.RateLimitRule{
		rateGroupDefault: {Rate: 20, Burst: 60},
		rateGroupExport:  {Rate: 0.2, Burst: 3},
		rateGroupAssist:  {Rate: 0.5, Burst: 5},
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rateLimitRules(),
			DefaultGroup: rateGroupDefault,
			GroupFor:     middleware.GroupByRoute(routeGroups),
			Limiter:      deps.Limiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.Health))
	api.GET("/me", me(deps.Credits))

	if deps.CreditsHandler != nil {
		deps.CreditsHandler.RegisterRoutes(api)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}
	if deps.PreviewHandler != nil {
		deps.PreviewHandler.RegisterRoutes(api)
	}
	if deps.AssistHandler != nil {
		deps.AssistHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
		deps.ExportHandler.RegisterPublicRoutes(api)
	}
	if deps.Config.IsDev() && deps.CreditsHandler != nil {
		dev := api.Group("/dev")
		deps.CreditsHandler.RegisterDevRoutes(dev)
	}

	return r
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		ok, checks := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
