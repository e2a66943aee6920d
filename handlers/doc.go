// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the livevote data service.

# Handler Types

Each handler is a struct with database, config and metrics dependencies:

  - OptionsHandler: Options collection reads, snapshot stream and increments
  - AuthHandler: Sign-in, sign-out and session lookup

Handlers are created via constructor functions:

	optionsHandler := handlers.NewOptionsHandler(db, cfg, st, m)

# Options

The collection is public to read and only writable by signed-in users:

	GET /options                  → ListOptions (one snapshot)
	GET /options/stream           → StreamOptions (server-sent events)
	POST /options/{id}/increment  → Increment (requires a session)

The stream sends a "snapshot" event with the full collection on connect
and again after every change. Idle streams receive a comment line every
DefaultKeepAlive.

Increment only accepts the "votes" field and a positive delta. The
addition is performed by the database.

# Sessions

	POST /auth/sign-in  → SignIn (registers the username on first use)
	POST /auth/sign-out → SignOut (revokes the session)
	GET /auth/session   → GetSession

Session operations carry an "Authorization: Bearer <token>" header.
Tokens are HS256 JWTs whose ID names a row of the session table, so a
signed-out token stops working before it expires.
*/
package handlers
