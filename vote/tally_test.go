// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"testing"

	"github.com/danielhkuo/livevote/models"
)

func TestPercent(t *testing.T) {
	testCases := []struct {
		votes, total int64
		want         int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{4, 5, 80},
		{1, 5, 20},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds away from zero
		{7, 7, 100},
	}

	for _, tc := range testCases {
		if got := Percent(tc.votes, tc.total); got != tc.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tc.votes, tc.total, got, tc.want)
		}
	}
}

func TestTally_NoVotes(t *testing.T) {
	options := []models.Option{
		{ID: "a", Name: "Cats"},
		{ID: "b", Name: "Dogs"},
	}

	total, standings := Tally(options, "")
	if total != 0 {
		t.Errorf("Expected total 0, got %d", total)
	}
	for _, st := range standings {
		if st.Percent != 0 || st.Share != 0 {
			t.Errorf("Expected zero standing, got %+v", st)
		}
	}
}

func TestTally_Empty(t *testing.T) {
	total, standings := Tally(nil, "a")
	if total != 0 || len(standings) != 0 {
		t.Errorf("Expected nothing, got %d %+v", total, standings)
	}
}

func TestTally_KeepsOrderAndShare(t *testing.T) {
	options := []models.Option{
		{ID: "a", Name: "Cats", Votes: 1},
		{ID: "b", Name: "Dogs", Votes: 3},
	}

	total, standings := Tally(options, "b")
	if total != 4 {
		t.Fatalf("Expected total 4, got %d", total)
	}
	if standings[0].Option.Name != "Cats" || standings[1].Option.Name != "Dogs" {
		t.Error("Standings must keep list order")
	}
	if standings[0].Share != 0.25 || standings[1].Share != 0.75 {
		t.Errorf("Unexpected shares %v %v", standings[0].Share, standings[1].Share)
	}
	if standings[0].Selected || !standings[1].Selected {
		t.Error("Only Dogs should be selected")
	}
}
