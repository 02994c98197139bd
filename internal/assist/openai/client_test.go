package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "padded uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o-mini", want: false},
		{name: "empty", model: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", "", 0); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := NewClient("sk", " ", "", 0); err == nil {
		t.Fatalf("expected missing model error")
	}
}

func TestCompleteSendsPromptAndTrimsReply(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Seasoned designer.  "}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o-mini", srv.URL+"/v1/", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	out, err := c.Complete(context.Background(), "write a summary")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "Seasoned designer." {
		t.Fatalf("unexpected reply %q", out)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "write a summary" {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Temperature == nil {
		t.Fatalf("expected temperature for non gpt-5 models")
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	c, _ := NewClient("sk-test", "gpt-4o-mini", srv.URL, time.Second)
	_, err := c.Complete(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected rate limited error, got %v", err)
	}
}
