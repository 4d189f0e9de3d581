// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method routing.

# Routes

Poll lifecycle:

	POST   /polls
	GET    /polls
	GET    /polls/{id}
	GET    /slugs/{slug}
	PUT    /polls/{id}
	POST   /polls/{id}/close
	DELETE /polls/{id}

Voting and results:

	POST /polls/{id}/vote
	GET  /polls/{id}/tallies
	GET  /polls/{id}/export?mode={tallies|raw}

Identity (only when an account database is configured):

	POST /auth/register
	POST /auth/login
	GET  /auth/me
*/
package router
