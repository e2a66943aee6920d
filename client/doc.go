// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the SDK for a livevote data service.

A Client is created with the static connection parameters of the service
and keeps the current session in memory:

	c := client.New("http://localhost:3318")
	sess, err := c.SignIn(ctx, "alice", "hunter22")

# Live subscriptions

Both subscriptions return a channel that closes when the context ends:

	options := c.SubscribeOptions(ctx)  // []models.Option per snapshot
	sessions := c.SubscribeSession(ctx) // *models.Session, nil when signed out

The options stream is server-sent events from GET /options/stream. A
failed stream is logged and closed; it is not reopened.

# Writes

Increment is the only write. It needs a session and returns
ErrNotSignedIn without contacting the service otherwise. Non-2xx
responses come back as *APIError.
*/
package client
