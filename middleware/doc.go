// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response utilities.

# Functions

  - WithLogging: wraps handlers with structured request logging
  - JSONResponse / ErrorResponse / IssuesResponse: JSON output helpers
  - ParseJSONBody: decodes a request body into a struct
  - BearerToken: extracts the session token from the Authorization header
  - BrowserToken: extracts the X-Browser-Token duplicate-vote signal
  - CORS: cross-origin support with preflight handling
  - GetClientIP: client address behind proxies (X-Forwarded-For, X-Real-IP)

IssuesResponse exists for batched validation failures: the body carries the
full issues list alongside the summary message.
*/
package middleware
