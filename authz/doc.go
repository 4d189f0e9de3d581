// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package authz holds the pure authorization predicates for poll operations:
// single-owner editing and the voting gates (login requirement, end date).
// Callers translate a false result into a classified error; nothing here
// touches storage or the clock beyond the instant it is handed.
package authz
