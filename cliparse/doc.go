// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence over the environment; main loads a .env file first so
local development only needs a checked-out repo.

Settings:

  - PORT (-p): server port (default 3320)
  - DATABASE_URL (-d): connection string, or a file path for the local store
  - DATABASE_TYPE (-t): sqlite, postgres, or local (default sqlite)
  - BASE_URL (-base-url): public base URL used in share links
  - SESSION_SALT (-session-salt): secret for session token HMAC, required
*/
package cliparse
