// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/livevote/tui/styles"
)

const (
	frameInterval = time.Second / 30

	// Fraction of the remaining distance a bar covers per frame
	easing = 0.3

	// Bars closer than this to their target snap to it
	snapDistance = 0.002
)

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

// barSet animates one bar per option id toward its share of the total.
type barSet struct {
	shown  map[string]float64
	target map[string]float64
}

func newBarSet() *barSet {
	return &barSet{
		shown:  make(map[string]float64),
		target: make(map[string]float64),
	}
}

// SetTargets replaces the targets. Bars for unknown ids start at 0;
// bars whose option disappeared are dropped. Reports whether any bar
// now needs to move.
func (b *barSet) SetTargets(targets map[string]float64) bool {
	for id := range b.shown {
		if _, ok := targets[id]; !ok {
			delete(b.shown, id)
		}
	}
	b.target = targets
	return b.Moving()
}

// Step moves every bar one frame toward its target. Reports whether any
// bar is still moving.
func (b *barSet) Step() bool {
	for id, target := range b.target {
		cur := b.shown[id]
		next := cur + (target-cur)*easing
		if math.Abs(target-next) < snapDistance {
			next = target
		}
		b.shown[id] = next
	}
	return b.Moving()
}

func (b *barSet) Moving() bool {
	for id, target := range b.target {
		if b.shown[id] != target {
			return true
		}
	}
	return false
}

// Shown is the displayed fraction for id, in [0, 1].
func (b *barSet) Shown(id string) float64 {
	return b.shown[id]
}

// renderBar draws fraction of width as filled cells.
func renderBar(fraction float64, width int, selected bool) string {
	if width <= 0 {
		return ""
	}
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))
	empty := width - filled

	filledStyle := styles.BarFilledStyle
	if selected {
		filledStyle = styles.SelectedBarFilledStyle
	}
	return filledStyle.Render(strings.Repeat("█", filled)) +
		styles.BarEmptyStyle.Render(strings.Repeat("░", empty))
}

// barWidth picks a bar width for the terminal width.
func barWidth(termWidth int) int {
	switch {
	case termWidth > 80:
		return 40
	case termWidth > 60:
		return 30
	default:
		return 20
	}
}
