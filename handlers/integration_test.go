// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/livevote/metrics"
	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/store"
	"github.com/danielhkuo/livevote/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Seed options
// 2. Read the collection signed out
// 3. Voting signed out is refused
// 4. Sign in (registers the account)
// 5. Cast a vote
// 6. Verify the collection
// 7. Sign out
// 8. The old token can no longer vote
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	st := store.New(db)
	m := metrics.New(prometheus.NewRegistry())

	optionsHandler := NewOptionsHandler(db, cfg, st, m)
	authHandler := NewAuthHandler(db, cfg, m)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /options", optionsHandler.ListOptions)
	mux.HandleFunc("POST /options/{id}/increment", optionsHandler.Increment)
	mux.HandleFunc("POST /auth/sign-in", authHandler.SignIn)
	mux.HandleFunc("POST /auth/sign-out", authHandler.SignOut)

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	// Step 1: Seed
	created, err := st.Seed(context.Background(), []string{"Cats", "Dogs"})
	if err != nil {
		t.Fatalf("Step 1 - Seed failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Step 1 - Expected 2 options, got %d", len(created))
	}
	catsID := created[0].ID

	// Step 2: Read signed out
	w := do(testutil.MakeRequest("GET", "/options", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var snap models.Snapshot
	testutil.AssertJSON(t, w, &snap)
	if len(snap.Options) != 2 || snap.Options[0].Name != "Cats" {
		t.Fatalf("Step 2 - Unexpected options: %+v", snap.Options)
	}

	// Step 3: Vote signed out
	w = do(testutil.MakeRequest("POST", "/options/"+catsID+"/increment", models.IncrementRequest{Delta: 1}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Step 4: Sign in
	w = do(testutil.MakeRequest("POST", "/auth/sign-in", models.SignInRequest{Username: "IntegrationTester", Password: "pw"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var signInResp models.SignInResponse
	testutil.AssertJSON(t, w, &signInResp)
	token := signInResp.Session.Token

	// Step 5: Vote
	w = do(testutil.MakeRequest("POST", "/options/"+catsID+"/increment", models.IncrementRequest{Field: models.FieldVotes, Delta: 1}, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 6: Verify
	w = do(testutil.MakeRequest("GET", "/options", nil, nil))
	testutil.AssertJSON(t, w, &snap)
	if snap.Options[0].Votes != 1 || snap.Options[1].Votes != 0 {
		t.Errorf("Step 6 - Unexpected counts: %+v", snap.Options)
	}

	// Step 7: Sign out
	w = do(testutil.MakeRequest("POST", "/auth/sign-out", nil, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	// Step 8: Old token refused
	w = do(testutil.MakeRequest("POST", "/options/"+catsID+"/increment", models.IncrementRequest{Delta: 1}, testutil.BearerHeader(token)))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	if got := testutil.GetVotes(t, db, catsID); got != 1 {
		t.Errorf("Expected 1 vote after workflow, got %d", got)
	}
}
