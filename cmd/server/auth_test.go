package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, srv *server, email, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := srv.db.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
}

func TestHandleLoginSetsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "ops@expertlane.test", "s3cret")

	rr := postJSON(t, srv.handleLogin, "/api/login", loginRequest{
		Email:    "ops@expertlane.test",
		Password: "s3cret",
	})

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rr.Code, rr.Body.String())
	}

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("expected a session cookie")
	}
	if !session.HttpOnly {
		t.Fatal("expected session cookie to be http-only")
	}

	email, ok := srv.auth.verifySessionToken(session.Value)
	if !ok || email != "ops@expertlane.test" {
		t.Fatalf("session token did not verify: ok=%v email=%q", ok, email)
	}
}

func TestHandleLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "ops@expertlane.test", "s3cret")

	cases := []loginRequest{
		{Email: "ops@expertlane.test", Password: "wrong"},
		{Email: "nobody@expertlane.test", Password: "s3cret"},
	}
	for _, c := range cases {
		rr := postJSON(t, srv.handleLogin, "/api/login", c)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401 for %q, got %d", c.Email, rr.Code)
		}
	}
}

func TestHandleLogoutClearsCookie(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleLogout(rr, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	var cleared bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the session cookie to be expired")
	}
}

func TestRequireAuthBlocksAnonymousRequests(t *testing.T) {
	srv := newTestServer(t)
	seedUser(t, srv, "ops@expertlane.test", "s3cret")

	var reached bool
	protected := srv.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))
	if rr.Code != http.StatusUnauthorized || reached {
		t.Fatalf("expected anonymous request to be rejected, got %d", rr.Code)
	}

	login := postJSON(t, srv.handleLogin, "/api/login", loginRequest{
		Email:    "ops@expertlane.test",
		Password: "s3cret",
	})
	if login.Code != http.StatusNoContent {
		t.Fatalf("login failed: %d", login.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !reached {
		t.Fatalf("expected authenticated request to pass, got %d", rr.Code)
	}
}

func TestVerifySessionTokenRejectsForgedTokens(t *testing.T) {
	srv := newTestServer(t)
	other := newAuthService(srv.db, "different-secret")

	token, err := other.createSessionToken("ops@expertlane.test")
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}
	if _, ok := srv.auth.verifySessionToken(token); ok {
		t.Fatal("expected token signed with another secret to be rejected")
	}
	if _, ok := srv.auth.verifySessionToken("not-a-token"); ok {
		t.Fatal("expected a malformed token to be rejected")
	}
}

func TestHandleLoginRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	srv.handleLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error message")
	}
}
