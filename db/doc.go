// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the configured database and creates the schema.

# Tables

  - poll: one row per poll; options, per-option counters, and the voter set
    are JSON columns so the row round-trips as a single document
  - vote: append-only raw vote records for export and auditing
  - voted_flag: (poll_id, browser_id) pairs, the non-authoritative
    duplicate-vote signal for anonymous voters
  - account: registered users for the identity endpoints

# Drivers

DATABASE_TYPE selects github.com/lib/pq (postgres) or modernc.org/sqlite.
Queries use $1-style placeholders, which both drivers accept. The "local"
database type bypasses this package entirely (see package store).
*/
package db
