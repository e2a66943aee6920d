// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
data service, the client SDK and the vote view.

# Request Types

  - SignInRequest: username, password
  - IncrementRequest: field, delta

# Response Types

  - SignInResponse: session, is_new
  - SessionResponse: user
  - ErrorResponse: error, message

# Domain Types

  - Option: id, name, votes (0 when absent)
  - Snapshot: the whole options collection plus the read time
  - User: stable identity (id, username)
  - Session: token, user, expires_at

# Constants

Counter fields:

	FieldVotes = "votes"

Stream events:

	EventSnapshot = "snapshot"
*/
package models
