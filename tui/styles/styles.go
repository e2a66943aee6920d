// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package styles provides Lip Gloss styles for the livevote terminal view.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	Primary     = lipgloss.Color("#7C3AED") // Purple
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

var (
	// TitleStyle is for the application title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	// SessionStyle shows who is signed in.
	SessionStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	// SignedOutStyle replaces SessionStyle when nobody is signed in.
	SignedOutStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Italic(true)
)

// Option row styles.
var (
	OptionStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	CursorOptionStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	// SelectedOptionStyle marks the option this session voted for.
	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(Success).
				Bold(true)

	BarFilledStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	SelectedBarFilledStyle = lipgloss.NewStyle().
				Foreground(Success).
				Bold(true)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PercentStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(MutedLight)
)

var (
	// BoxStyle frames the sign-in form.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// HelpKeyStyle is for keyboard shortcut keys.
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(MutedLight)
)
