// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open(db.TypeSQLite, "file:livevote.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite pools are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - options: The options collection (id, name, votes)
  - account: Registered identities with bcrypt password hashes
  - session: Issued sessions; revoked on sign-out

# Relationships

	account (1) ──< session (N)

options has no foreign keys; documents are seeded out-of-band and only
their votes counter is ever updated.
*/
package db
