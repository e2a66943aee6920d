// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/db"
)

var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database; it is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("file:livevote_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := db.Open(db.TypeSQLite, name)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file::memory:",
		DatabaseType:  db.TypeSQLite,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		WatchInterval: 10 * time.Millisecond,
	}
}

// AddTestOption inserts an option with the given vote count and returns its ID
func AddTestOption(t *testing.T, conn *sql.DB, name string, votes int64) string {
	t.Helper()

	optionID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO options (id, name, votes, created_at)
		VALUES ($1, $2, $3, $4)
	`, optionID, name, votes, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CreateTestSession registers an account with an open session and returns
// a signed token for it
func CreateTestSession(t *testing.T, conn *sql.DB, cfg cliparse.Config, username string) (accountID, sessionID, token string) {
	t.Helper()

	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	accountID = auth.NewID()
	_, err = conn.Exec(`
		INSERT INTO account (id, username, password_hash)
		VALUES ($1, $2, $3)
	`, accountID, username, hash)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	sessionID = auth.NewID()
	_, err = conn.Exec(`
		INSERT INTO session (id, account_id) VALUES ($1, $2)
	`, sessionID, accountID)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	token, _, err = auth.IssueToken(cfg.SessionSecret, accountID, username, sessionID, cfg.SessionTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}

	return accountID, sessionID, token
}

// GetVotes reads the raw vote counter of an option
func GetVotes(t *testing.T, conn *sql.DB, optionID string) int64 {
	t.Helper()

	var votes sql.NullInt64
	if err := conn.QueryRow(`SELECT votes FROM options WHERE id = $1`, optionID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read votes: %v", err)
	}
	return votes.Int64
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// BearerHeader builds the Authorization header map for a token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
