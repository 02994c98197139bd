package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"resume-studio/internal/credits"
	"resume-studio/internal/services/health"
	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/config"
)

func TestHealthReportsChecks(t *testing.T) {
	svc := health.NewService()
	svc.Add("redis", func(context.Context) error { return errors.New("down") })
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}, Health: svc})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"checks":{"redis":"down"},"ok":false}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestMetricsIsPublic(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestMeDescribesGuest(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}, Credits: credits.NewService()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"userId":"guest:abc","guest":true,"licensed":false}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestMeIncludesAccountForUsers(t *testing.T) {
	t.Setenv("JWT_SECRET", "router-secret")
	token, err := auth.SignJWT(auth.Claims{Email: "ana@example.com", RegisteredClaims: jwt.RegisteredClaims{Subject: "user-5"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}, Credits: credits.NewService()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		UserID  string `json:"userId"`
		Email   string `json:"email"`
		Account struct {
			Plan    string `json:"plan"`
			Credits int    `json:"credits"`
		} `json:"account"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID != "user-5" || body.Email != "ana@example.com" {
		t.Fatalf("unexpected identity %+v", body)
	}
	if body.Account.Plan != credits.PlanFree || body.Account.Credits != credits.DefaultStartingCredits {
		t.Fatalf("unexpected account %+v", body.Account)
	}
}

func TestMeRejectsAnonymous(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	for in, want := range map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"} {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
