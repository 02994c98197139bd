package respond

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/telemetry"
)

func TestErrorEnvelopeAndLogLevel(t *testing.T) {
	var logs bytes.Buffer
	prev := telemetry.SetOutput(&logs)
	defer telemetry.SetOutput(prev)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/bad", func(c *gin.Context) {
		Error(c, http.StatusPaymentRequired, "insufficient_credits", "not enough credits", gin.H{"needed": 2})
	})
	r.GET("/broken", func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "export_failed", "export failed", nil)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/bad", nil))
	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", resp.Code)
	}
	want := `{"error":{"code":"insufficient_credits","message":"not enough credits","details":{"needed":2}}}`
	if resp.Body.String() != want {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if !strings.Contains(logs.String(), `"level":"warn"`) {
		t.Fatalf("expected warn log, got %s", logs.String())
	}

	logs.Reset()
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/broken", nil))
	if resp.Body.String() != `{"error":{"code":"export_failed","message":"export failed"}}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if !strings.Contains(logs.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got %s", logs.String())
	}
}
