// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
// subset both postgres and sqlite accept; timestamps are always set by
// application code rather than column defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls. Options, per-option counters, and the voter set are stored as JSON
-- alongside the row, matching the document shape the service works with.
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    slug TEXT NOT NULL,
    author_id TEXT NOT NULL DEFAULT '',
    author_name TEXT NOT NULL DEFAULT 'Anonymous',
    options TEXT NOT NULL,
    option_votes TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0,
    voters TEXT NOT NULL DEFAULT '[]',
    allow_multiple BOOLEAN NOT NULL DEFAULT FALSE,
    require_login BOOLEAN NOT NULL DEFAULT FALSE,
    ends_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_author_id ON poll(author_id);
CREATE INDEX IF NOT EXISTS idx_poll_slug ON poll(slug);

-- Raw votes, append-only. Written in the same transaction as the poll
-- counter update.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL,
    voter_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_poll_option ON vote(poll_id, option_id);

-- Best-effort duplicate-vote discouragement for anonymous voters, keyed by a
-- client-generated browser token.
CREATE TABLE IF NOT EXISTS voted_flag (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    browser_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, browser_id)
);

-- Accounts for the identity endpoints.
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`
