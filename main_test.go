// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/livevote/models"
)

// runRoot executes a fresh command tree with args
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"serve": false, "seed": false, "vote": false, "watch": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Missing %s command", name)
		}
	}
}

func TestSeedCommand(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "")
	dbURL := "file:" + filepath.Join(t.TempDir(), "seed.db")

	out, err := runRoot(t, "seed", "-d", dbURL, "Cats", "Dogs")
	if err != nil {
		t.Fatalf("seed failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Cats") || !strings.Contains(out, "created 2 of 2 options") {
		t.Errorf("Unexpected output:\n%s", out)
	}

	// Seeding again skips existing names
	out, err = runRoot(t, "seed", "-d", dbURL, "Cats", "Birds")
	if err != nil {
		t.Fatalf("second seed failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "created 1 of 2 options") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestSeedCommand_RequiresNames(t *testing.T) {
	if _, err := runRoot(t, "seed"); err == nil {
		t.Error("seed without names should fail")
	}
}

func TestServeCommand_RequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PORT", "")

	_, err := runRoot(t, "serve", "-d", "file:"+filepath.Join(t.TempDir(), "serve.db"))
	if err == nil || !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Errorf("Expected SESSION_SECRET error, got %v", err)
	}
}

func TestPrintStandings(t *testing.T) {
	var out bytes.Buffer
	printStandings(&out, []models.Option{
		{ID: "a", Name: "Cats", Votes: 4},
		{ID: "b", Name: "Dogs", Votes: 1},
	})

	want := "Cats  80%  4\nDogs  20%  1\n5 votes\n\n"
	if out.String() != want {
		t.Errorf("printStandings() =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestPrintStandings_NoVotes(t *testing.T) {
	var out bytes.Buffer
	printStandings(&out, []models.Option{
		{ID: "a", Name: "Cats"},
		{ID: "b", Name: "Dogs", Votes: 0},
	})

	if strings.Contains(out.String(), "NaN") || !strings.Contains(out.String(), "Cats   0%") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "0 votes\n\n") {
		t.Errorf("Expected total line:\n%s", out.String())
	}
}

func TestPrintStandings_ThousandsSeparator(t *testing.T) {
	var out bytes.Buffer
	printStandings(&out, []models.Option{{ID: "a", Name: "Cats", Votes: 1234567}})

	if !strings.Contains(out.String(), "1,234,567") {
		t.Errorf("Expected separated count:\n%s", out.String())
	}
}

func TestPrintStandings_MultibyteNames(t *testing.T) {
	var out bytes.Buffer
	printStandings(&out, []models.Option{
		{ID: "a", Name: "Ñu", Votes: 4},
		{ID: "b", Name: "Cats", Votes: 1},
	})

	want := "Ñu    80%  4\nCats  20%  1\n5 votes\n\n"
	if out.String() != want {
		t.Errorf("printStandings() =\n%q\nwant\n%q", out.String(), want)
	}
}

// closingSource delivers its snapshots, then closes the subscription
type closingSource struct {
	snapshots [][]models.Option
}

func (s closingSource) SubscribeOptions(ctx context.Context) <-chan []models.Option {
	ch := make(chan []models.Option, len(s.snapshots))
	for _, snap := range s.snapshots {
		ch <- snap
	}
	close(ch)
	return ch
}

func TestWatchStandings(t *testing.T) {
	src := closingSource{snapshots: [][]models.Option{{{ID: "a", Name: "Cats", Votes: 1}}}}

	t.Run("stream ends on its own", func(t *testing.T) {
		var out bytes.Buffer
		err := watchStandings(context.Background(), src, &out)
		if err == nil {
			t.Error("Expected an error when the stream closes while watching")
		}
		if !strings.Contains(out.String(), "1 votes") {
			t.Errorf("Snapshot should still be printed:\n%s", out.String())
		}
	})

	t.Run("interrupted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := watchStandings(ctx, src, io.Discard); err != nil {
			t.Errorf("Expected nil after cancellation, got %v", err)
		}
	})
}

func TestWatchCommand_UnreachableServer(t *testing.T) {
	if _, err := runRoot(t, "watch", "-s", "http://127.0.0.1:1"); err == nil {
		t.Error("watch should fail when the service cannot be reached")
	}
}
