package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/telemetry"
)

// ErrorBody is the error object every failing endpoint returns.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps ErrorBody as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts the chain with the error envelope and logs the code.
// 5xx responses log at error level, everything else at warn.
func Error(c *gin.Context, status int, code, message string, details any) {
	level := telemetry.LevelWarn
	if status >= http.StatusInternalServerError {
		level = telemetry.LevelError
	}
	entry := map[string]any{
		"request_id": c.GetString("requestId"),
		"route":      c.FullPath(),
		"status":     status,
		"code":       code,
		"message":    message,
	}
	if principal := c.GetString("userId"); principal != "" {
		entry["user_id"] = principal
	}
	telemetry.Log(level, "http.error", entry)

	body := ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}}
	c.AbortWithStatusJSON(status, body)
}
