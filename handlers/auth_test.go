// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/metrics"
	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/testutil"
)

func newTestAuthHandler(t *testing.T) (*sql.DB, *AuthHandler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return db, NewAuthHandler(db, cfg, metrics.New(prometheus.NewRegistry()))
}

func signIn(h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/auth/sign-in", models.SignInRequest{
		Username: username,
		Password: password,
	}, nil)
	w := httptest.NewRecorder()
	h.SignIn(w, req)
	return w
}

func TestSignIn_RegistersOnFirstUse(t *testing.T) {
	db, h := newTestAuthHandler(t)
	cfg := testutil.GetTestConfig()

	w := signIn(h, "alice", "hunter22")
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SignInResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.IsNew {
		t.Error("First sign-in should register the account")
	}
	if resp.Session.User.Username != "alice" || resp.Session.User.ID == "" {
		t.Errorf("Unexpected user: %+v", resp.Session.User)
	}
	if resp.Session.ExpiresAt.IsZero() {
		t.Error("Expected expires_at to be set")
	}

	claims, err := auth.ParseToken(cfg.SessionSecret, resp.Session.Token)
	if err != nil {
		t.Fatalf("Token should verify: %v", err)
	}
	if claims.Subject != resp.Session.User.ID {
		t.Errorf("Token subject %s does not match user %s", claims.Subject, resp.Session.User.ID)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM session WHERE account_id = $1`, claims.Subject).Scan(&count); err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 session row, got %d", count)
	}
}

func TestSignIn_ExistingAccount(t *testing.T) {
	_, h := newTestAuthHandler(t)

	first := signIn(h, "alice", "hunter22")
	testutil.AssertStatus(t, first, http.StatusCreated)
	var firstResp models.SignInResponse
	testutil.AssertJSON(t, first, &firstResp)

	second := signIn(h, "alice", "hunter22")
	testutil.AssertStatus(t, second, http.StatusOK)
	var secondResp models.SignInResponse
	testutil.AssertJSON(t, second, &secondResp)

	if secondResp.IsNew {
		t.Error("Second sign-in should not register again")
	}
	// Stable identity across sessions
	if secondResp.Session.User.ID != firstResp.Session.User.ID {
		t.Errorf("Expected same user id, got %s and %s", firstResp.Session.User.ID, secondResp.Session.User.ID)
	}
	if secondResp.Session.Token == firstResp.Session.Token {
		t.Error("Each sign-in should open a new session")
	}
}

func TestSignIn_Validation(t *testing.T) {
	_, h := newTestAuthHandler(t)
	testutil.AssertStatus(t, signIn(h, "alice", "hunter22"), http.StatusCreated)

	testCases := []struct {
		name           string
		username       string
		password       string
		expectedStatus int
	}{
		{"wrong password", "alice", "wrong", http.StatusUnauthorized},
		{"username too short", "a", "pw", http.StatusBadRequest},
		{"missing password", "bob", "", http.StatusBadRequest},
		{"password too long", "bob", strings.Repeat("p", models.MaxPasswordBytes+1), http.StatusBadRequest},
		{"password at limit", "carol", strings.Repeat("p", models.MaxPasswordBytes), http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertStatus(t, signIn(h, tc.username, tc.password), tc.expectedStatus)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/sign-in", nil)
		w := httptest.NewRecorder()
		h.SignIn(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSignOut_RevokesSession(t *testing.T) {
	db, h := newTestAuthHandler(t)
	cfg := testutil.GetTestConfig()
	_, sessionID, token := testutil.CreateTestSession(t, db, cfg, "alice")

	// Session is live
	w := httptest.NewRecorder()
	h.GetSession(w, testutil.MakeRequest("GET", "/auth/session", nil, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var sess models.SessionResponse
	testutil.AssertJSON(t, w, &sess)
	if sess.User.Username != "alice" {
		t.Errorf("Expected alice, got %s", sess.User.Username)
	}

	// Sign out
	w = httptest.NewRecorder()
	h.SignOut(w, testutil.MakeRequest("POST", "/auth/sign-out", nil, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	var revoked bool
	if err := db.QueryRow(`SELECT revoked FROM session WHERE id = $1`, sessionID).Scan(&revoked); err != nil {
		t.Fatalf("Failed to read session: %v", err)
	}
	if !revoked {
		t.Error("Session should be revoked after sign-out")
	}

	// Token no longer works
	w = httptest.NewRecorder()
	h.GetSession(w, testutil.MakeRequest("GET", "/auth/session", nil, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	h.SignOut(w, testutil.MakeRequest("POST", "/auth/sign-out", nil, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestGetSession_Unauthorized(t *testing.T) {
	db, h := newTestAuthHandler(t)
	cfg := testutil.GetTestConfig()
	_, _, token := testutil.CreateTestSession(t, db, cfg, "alice")

	testCases := []struct {
		name    string
		headers map[string]string
	}{
		{"no header", nil},
		{"garbage token", testutil.BearerHeader("garbage")},
		{"token signed elsewhere", testutil.BearerHeader(token + "x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.GetSession(w, testutil.MakeRequest("GET", "/auth/session", nil, tc.headers))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}

	t.Run("unknown session", func(t *testing.T) {
		unknown, _, err := auth.IssueToken(cfg.SessionSecret, "acct", "ghost", "no-such-session", cfg.SessionTTL, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		w := httptest.NewRecorder()
		h.GetSession(w, testutil.MakeRequest("GET", "/auth/session", nil, testutil.BearerHeader(unknown)))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
