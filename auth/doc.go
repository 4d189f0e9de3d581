// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the identity primitives: random IDs, HMAC-signed
session tokens, and bcrypt password hashing.

# Session Tokens

Tokens are stateless: "<user_id>.<nonce>.<signature>" where the signature is
an HMAC-SHA256 over the first two parts keyed by the configured session salt.

	token, err := auth.NewSessionToken(userID, cfg.SessionSalt)
	userID, err := auth.VerifySessionToken(token, cfg.SessionSalt)

Rotating the salt invalidates every outstanding session.

# Passwords

HashPassword / CheckPassword wrap bcrypt with its default cost. Plaintext
passwords never leave the handler that received them.
*/
package auth
