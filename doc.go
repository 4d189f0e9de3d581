// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbox API server.

Pollbox is a poll-creation and voting service: create polls with 2-6 options
and settings (login requirement, multiple choice, end date), share them by
link, vote, and export tallies or raw votes as CSV.

# Starting the Server

The server reads a .env file, then environment variables, then CLI flags:

	DATABASE_URL=polls.db SESSION_SALT=secret go run main.go

Or with flags:

	go run main.go -p 3320 -t sqlite -d polls.db -session-salt secret

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (postgres), database file (sqlite),
    or JSON file path (local)
  - SESSION_SALT (-session-salt): secret for session token HMAC

Optional settings:

  - PORT (-p): server port (default: 3320)
  - DATABASE_TYPE (-t): postgres, sqlite, or local (default: sqlite)
  - BASE_URL (-base-url): public base URL for share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - validate: poll-creation and vote input validation
  - authz: pure ownership and voting-permission predicates
  - store: poll/vote persistence (SQL or local JSON file)
  - service: orchestration and classified errors
  - csvexport: injection-safe CSV rendering
  - handlers: HTTP request handlers (polls, voting, export, users)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: session tokens and password hashing
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
