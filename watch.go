// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/livevote/client"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/vote"
)

func newWatchCmd() *cobra.Command {
	var cfg cliparse.Config

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the standings on every change",
		Long: `Subscribe to the options collection and print the standings each
time a snapshot arrives. Read-only; no sign-in needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ResolveClient(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watchStandings(ctx, client.New(cfg.ServerURL), cmd.OutOrStdout())
		},
	}
	cliparse.BindClientFlags(cmd.Flags(), &cfg)

	return cmd
}

// watchStandings prints every snapshot until ctx ends. A subscription
// that closes on its own is an error.
func watchStandings(ctx context.Context, src vote.OptionSource, w io.Writer) error {
	for options := range src.SubscribeOptions(ctx) {
		printStandings(w, options)
	}
	if ctx.Err() == nil {
		return errors.New("options stream closed")
	}
	return nil
}

// printStandings writes one block per snapshot
func printStandings(w io.Writer, options []models.Option) {
	total, standings := vote.Tally(options, "")

	nameWidth := 0
	for _, st := range standings {
		nameWidth = max(nameWidth, lipgloss.Width(st.Option.Name))
	}

	for _, st := range standings {
		pad := strings.Repeat(" ", nameWidth-lipgloss.Width(st.Option.Name))
		fmt.Fprintf(w, "%s%s %3d%%  %s\n", st.Option.Name, pad, st.Percent, humanize.Comma(st.Option.Votes))
	}
	fmt.Fprintf(w, "%s votes\n\n", humanize.Comma(total))
}
