// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command livevote runs a live vote.

Signed-in users see a list of options, cast one vote, and watch the
percentage bars update as everyone else votes.

# Commands

	livevote serve          data service (options, live stream, sign-in)
	livevote seed NAME...   add options to the database
	livevote vote           interactive terminal view
	livevote watch          print the standings on every change

# Starting the Server

The server requires a session secret:

	SESSION_SECRET=change-me livevote serve

Or with flags:

	livevote serve -p 3318 -d "postgres://..." -t postgres --session-secret change-me

A .env file in the working directory is loaded first (see --env-file).

# Configuration

Data service:

  - SESSION_SECRET (--session-secret): Signing secret for session tokens (required)
  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Database URL (default: file:livevote.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL (--session-ttl): Session lifetime (default: 24h)
  - WATCH_INTERVAL (--watch-interval): How often out-of-band edits are picked up (default: 2s)

Clients:

  - LIVEVOTE_URL (-s): Data service URL (default: http://localhost:3318)
  - LIVEVOTE_LOG (--log-file): Log file of the vote view (default: livevote.log)

# Architecture

  - vote: View state, vote casting rules and percentage math
  - tui: Bubble Tea view over a vote.Backend
  - client: SDK for the data service; implements vote.Backend
  - handlers: HTTP request handlers (options, sessions)
  - router: Route definitions using Go 1.22+ routing
  - store: Options collection and snapshot fan-out
  - middleware: CORS, logging, JSON helpers
  - metrics: Prometheus collectors
  - models: Wire types
  - auth: Password hashing and session tokens
  - db: Connections and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
