// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polls, raw votes, and the browser-scoped voted flag.

Two implementations satisfy the Store interface:

  - SQL: postgres or sqlite through database/sql. RecordVote runs the
    counter update and the raw vote insert in one transaction, so the count
    and the audit trail cannot drift apart.
  - Local: a single JSON file for demo/offline deployments. A missing or
    corrupt file reads as an empty collection.

Updates are last-writer-wins: Update and RecordVote read the current record,
transform it, and write it back without optimistic concurrency. The SQL
implementation bounds the window inside a transaction; the Local one holds a
process-wide mutex.

RecordVote self-heals a poll whose stored OptionVotes length disagrees with
its options (reset to zeros) before incrementing, and voter-set membership is
idempotent: recording twice with the same voter id increments counters twice
but never duplicates the voter entry.
*/
package store
