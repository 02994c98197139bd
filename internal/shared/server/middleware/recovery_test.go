package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/telemetry"
)

func TestRecoveryWritesEnvelope(t *testing.T) {
	var logs bytes.Buffer
	prev := telemetry.SetOutput(&logs)
	defer telemetry.SetOutput(prev)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"internal"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if !strings.Contains(logs.String(), `"msg":"panic"`) {
		t.Fatalf("expected panic log, got %s", logs.String())
	}
}
