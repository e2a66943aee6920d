// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the options collection of the data service.

# Operations

	st := store.New(conn)
	options, err := st.List(ctx)
	opt, err := st.Increment(ctx, id, models.FieldVotes, 1)
	created, err := st.Seed(ctx, []string{"Cats", "Dogs"})

Increment is a single UPDATE ... SET votes = COALESCE(votes, 0) + $1, so
concurrent writers never lose an update. Only the votes field and positive
deltas are accepted, which keeps the total vote count non-decreasing.

# Snapshots

Every successful write publishes the whole collection on the store's Hub.
Watch polls the table so edits made by other processes (seeding, manual
SQL) are published too:

	go st.Watch(ctx, 2*time.Second)

	ch, cancel := st.Hub().Subscribe()
	defer cancel()
	for snap := range ch {
		// full replacement, never a diff
	}

Subscribers hold at most one pending snapshot; a slow reader skips
straight to the newest one.
*/
package store
