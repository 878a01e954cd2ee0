package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	sharedauth "resume-matcher/internal/shared/auth"
	"resume-matcher/internal/users"
)

func newFakeGoogle(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"123","email":"ann@example.com","name":"Ann Lee","given_name":"Ann","family_name":"Lee"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleSignInIssuesTokenAndStoresProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := newFakeGoogle(t)

	signer, err := sharedauth.NewSigner("secret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	profiles := users.NewService(users.NewMemoryRepo())
	svc := NewGoogleService("client", "secret", "http://api.test/callback", "http://ui.test/auth", signer, profiles)
	svc.oauthConfig.Endpoint = oauth2.Endpoint{AuthURL: fake.URL + "/auth", TokenURL: fake.URL + "/token"}
	svc.userInfoURL = fake.URL + "/userinfo"

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 from start, got %d", resp.Code)
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in %s", loc)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=c1", nil))
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 from callback, got %d: %s", resp.Code, resp.Body.String())
	}
	redirect, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if redirect.Host != "ui.test" {
		t.Fatalf("unexpected redirect host %q", redirect.Host)
	}
	claims, err := signer.Verify(redirect.Query().Get("token"))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "google:123" || claims.Email != "ann@example.com" {
		t.Fatalf("unexpected claims %#v", claims)
	}

	user, err := profiles.GetByID(context.Background(), "google:123")
	if err != nil {
		t.Fatalf("profile not stored: %v", err)
	}
	if user.GivenName != "Ann" || user.CreatedAt == 0 {
		t.Fatalf("unexpected profile %#v", user)
	}

	// State is single use.
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=c1", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on replayed state, got %d", resp.Code)
	}
}

func TestGoogleStartRequiresConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "", nil, nil)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestStateStoreExpiry(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))
	store.put("fresh", time.Now().Add(time.Minute))

	if store.consume("old") {
		t.Fatalf("expired state should not be accepted")
	}
	if !store.consume("fresh") {
		t.Fatalf("fresh state should be accepted")
	}
	if store.consume("fresh") {
		t.Fatalf("state should be single use")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://ui.test/auth?next=%2Fdashboard", "tok")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	u, _ := url.Parse(got)
	if u.Query().Get("token") != "tok" || u.Query().Get("next") != "/dashboard" {
		t.Fatalf("unexpected url %s", got)
	}
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}
