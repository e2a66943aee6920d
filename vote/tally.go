// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"math"

	"github.com/danielhkuo/livevote/models"
)

// Standing is one option as rendered
type Standing struct {
	Option   models.Option
	Percent  int     // rounded display percentage
	Share    float64 // exact fraction of the total, for bar widths
	Selected bool
}

// Tally computes the total and per-option standings in list order.
// Every percentage is 0 when nobody has voted.
func Tally(options []models.Option, selected string) (int64, []Standing) {
	var total int64
	for _, opt := range options {
		if opt.Votes > 0 {
			total += opt.Votes
		}
	}

	standings := make([]Standing, len(options))
	for i, opt := range options {
		standings[i] = Standing{
			Option:   opt,
			Percent:  Percent(opt.Votes, total),
			Selected: selected != "" && opt.ID == selected,
		}
		if total > 0 && opt.Votes > 0 {
			standings[i].Share = float64(opt.Votes) / float64(total)
		}
	}
	return total, standings
}

// Percent is round(votes/total*100), or 0 when total is 0
func Percent(votes, total int64) int {
	if total <= 0 || votes <= 0 {
		return 0
	}
	return int(math.Round(float64(votes) / float64(total) * 100))
}
