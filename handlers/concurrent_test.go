// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/testutil"
)

// TestConcurrentIncrements verifies that simultaneous increments from
// different sessions are all counted
func TestConcurrentIncrements(t *testing.T) {
	db, _, h := newTestOptionsHandler(t)
	cfg := testutil.GetTestConfig()

	catsID := testutil.AddTestOption(t, db, "Cats", 0)

	numVoters := 10
	tokens := make([]string, numVoters)

	// Pre-create all sessions
	for i := 0; i < numVoters; i++ {
		username := "ConcurrentVoter" + string(rune('A'+i))
		_, _, tokens[i] = testutil.CreateTestSession(t, db, cfg, username)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			h.Increment(w, incrementRequest(catsID, models.IncrementRequest{Delta: 1}, tokens[voterIdx]))

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful increments, got %d", numVoters, successCount.Load())
	}

	if got := testutil.GetVotes(t, db, catsID); got != int64(numVoters) {
		t.Errorf("Expected %d votes in database, got %d", numVoters, got)
	}
}

// TestConcurrentFirstSignIn verifies that when several goroutines sign in
// with the same new username, exactly one account is registered
func TestConcurrentFirstSignIn(t *testing.T) {
	db, h := newTestAuthHandler(t)

	numAttempts := 5
	var createdCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := signIn(h, "RaceConditionUser", "same-password")
			if w.Code == http.StatusCreated {
				createdCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if createdCount.Load() != 1 {
		t.Errorf("Expected exactly 1 registration, got %d", createdCount.Load())
	}

	var accounts int
	if err := db.QueryRow(`SELECT COUNT(*) FROM account WHERE username = $1`, "RaceConditionUser").Scan(&accounts); err != nil {
		t.Fatalf("Failed to count accounts: %v", err)
	}
	if accounts != 1 {
		t.Errorf("Expected 1 account in database, got %d", accounts)
	}
}
