// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/livevote/client"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/tui"
)

func newVoteCmd() *cobra.Command {
	var cfg cliparse.Config

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Open the interactive vote view",
		Long: `Open the interactive vote view against a running data service.

Sign in with s, move with the arrow keys, vote with enter and sign out
with o. Logs go to --log-file since the terminal belongs to the view.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ResolveClient(); err != nil {
				return err
			}

			logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close()
			slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

			slog.Info("vote view starting", "server", cfg.ServerURL)
			return tui.Run(cmd.Context(), client.New(cfg.ServerURL))
		},
	}
	cliparse.BindClientFlags(cmd.Flags(), &cfg)

	return cmd
}
