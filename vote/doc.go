// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote holds the view state of a live vote and the rules that
derive what is rendered from it.

# Lifecycle

Per session a view moves through three phases:

	Unauthenticated → Ready → Voted

Signing out returns to Unauthenticated and resets the local ballot.
There is no way back from Voted to Ready without signing out.

# Casting

CastVote issues a single +1 increment through a Counter. It is a no-op
returning ErrNotSignedIn or ErrAlreadyVoted when the ballot is not open.
The ballot is only recorded after the write succeeds, so a failed write
can be retried.

# Rendering

Tally sums the vote counts and rounds each option's share to a whole
percentage. Rounding is per option, so the percentages may add up to
slightly more or less than 100.
*/
package vote
