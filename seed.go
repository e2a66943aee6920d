// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/store"
)

func newSeedCmd() *cobra.Command {
	var cfg cliparse.Config

	cmd := &cobra.Command{
		Use:   "seed NAME...",
		Short: "Add voting options to the database",
		Long: `Add one voting option per NAME directly to the database. Names that
already exist are skipped. A running data service publishes the new
options on its next watch tick.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ResolveDatabase(); err != nil {
				return err
			}

			dbConn, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			names := make([]string, len(args))
			for i, arg := range args {
				names[i] = strings.TrimSpace(arg)
			}

			created, err := store.New(dbConn).Seed(cmd.Context(), names)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, opt := range created {
				fmt.Fprintf(out, "%s  %s\n", opt.ID, opt.Name)
			}
			fmt.Fprintf(out, "created %d of %d options\n", len(created), len(args))
			return nil
		},
	}
	cliparse.BindDatabaseFlags(cmd.Flags(), &cfg)

	return cmd
}
