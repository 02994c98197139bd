package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/telemetry"
)

const logFieldsKey = "logFields"

// quietPaths are polled by probes and scrapers and only log on failure.
var quietPaths = map[string]struct{}{
	"/api/v1/health": {},
	"/metrics":       {},
}

// Annotate attaches a field to the request's access log line.
func Annotate(c *gin.Context, key string, value any) {
	fields, _ := c.Get(logFieldsKey)
	m, ok := fields.(map[string]any)
	if !ok {
		m = map[string]any{}
		c.Set(logFieldsKey, m)
	}
	m[key] = value
}

// Logging writes one access line per request once the handler chain returns.
// The level follows the status: 5xx error, 4xx warn, otherwise info.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if _, quiet := quietPaths[c.Request.URL.Path]; quiet && status < http.StatusInternalServerError {
			return
		}

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			"client_ip":   c.ClientIP(),
		}
		if id := UserIDFromContext(c); id != "" {
			fields["user_id"] = id
			fields["is_guest"] = IsGuest(c)
		}
		if extra, ok := c.Get(logFieldsKey); ok {
			for k, v := range extra.(map[string]any) {
				fields[k] = v
			}
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		level := telemetry.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = telemetry.LevelError
		case status >= http.StatusBadRequest:
			level = telemetry.LevelWarn
		}
		telemetry.Log(level, "request.complete", fields)
	}
}
