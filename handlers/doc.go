// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the pollbox API.

# Handler Types

Each handler is a struct holding the poll service, the account database
(nil for the local store variant), and the config:

  - PollHandler: poll lifecycle (create, list, get, update, close, delete)
  - VotingHandler: vote casting and public tallies
  - ExportHandler: CSV export of tallies or raw votes
  - UserHandler: register, login, me

# Identity

Requests carry an optional "Authorization: Bearer <token>" header. Handlers
resolve it to a user via currentUser; anonymous requests simply resolve to
nil and the service decides what that means per operation.

# Voting

	POST /polls/{id}/vote

The optional X-Browser-Token header identifies the browser for the
best-effort duplicate-vote flag. Duplicate votes answer 409, closed or
login-required polls 403.

# Export

	GET /polls/{id}/export?mode=tallies   (public, briefly cacheable)
	GET /polls/{id}/export?mode=raw       (author only, no-store)

Responses are text/csv with an attachment filename of the form
poll-<slug>-<mode>-<yyyymmdd>.csv.
*/
package handlers
