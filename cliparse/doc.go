// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

Flags are bound onto a command's pflag set and resolved afterwards:

	var cfg cliparse.Config
	cliparse.BindServerFlags(cmd.Flags(), &cfg)
	// ... after parsing
	err := cfg.ResolveServer()

ParseServerFlags does both in one step for a plain argument list:

	cfg, err := cliparse.ParseServerFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default: file:livevote.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSecret: Secret for signing session tokens (required for serve)
  - SessionTTL: Session lifetime (default: 24h)
  - WatchInterval: How often the options collection is re-read (default: 2s)
  - ServerURL: Data service URL for clients (default: http://localhost:3318)
  - LogFile: Client log file (default: livevote.log)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p, --port
	DATABASE_URL   → -d, --database-url
	DATABASE_TYPE  → -t, --database-type
	SESSION_SECRET → --session-secret
	SESSION_TTL    → --session-ttl
	WATCH_INTERVAL → --watch-interval
	LIVEVOTE_URL   → -s, --server
	LIVEVOTE_LOG   → --log-file

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment before resolution; variables that are
already set are not overridden.

# Validation

ResolveServer returns an error if SESSION_SECRET is missing or a value
does not parse.
*/
package cliparse
