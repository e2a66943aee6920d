// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call returns a fresh tree so
// flag state never leaks between runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "livevote",
		Short: "Live voting with real-time standings",
		Long: `livevote runs a small live vote: a data service holding the options
and sessions, and a terminal view where signed-in users cast one vote
and watch the percentages move.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return cliparse.LoadEnvFile(envFile)
		},
	}
	root.PersistentFlags().String("env-file", ".env", "Environment file to load before reading variables")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newVoteCmd(),
		newWatchCmd(),
	)
	return root
}

// openDatabase connects, verifies the connection and creates the schema
func openDatabase(cfg cliparse.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Debug("Database schema ready", "type", cfg.DatabaseType)

	return conn, nil
}
