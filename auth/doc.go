// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the identity primitives of the data service.

# Passwords

Account passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, candidate) // ErrInvalidCredentials on mismatch

# Session Tokens

Sessions are HS256 JWTs. The jti claim carries the session id and the
subject carries the account id:

	token, expiresAt, err := auth.IssueToken(secret, accountID, username, sessionID, ttl, time.Now())
	claims, err := auth.ParseToken(secret, token) // ErrInvalidToken when bad or expired

A token that parses may still belong to a revoked session; callers check
the session table.

# ID Generation

Random UUIDs for accounts, sessions and options:

	id := auth.NewID()
*/
package auth
