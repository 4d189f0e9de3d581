// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, options, settings fields
  - UpdatePollRequest: title, description, options (author only)
  - VoteRequest: option_index
  - RegisterRequest / LoginRequest: identity endpoints

# Domain Types

Internal data structures:

  - Poll: poll record with index-aligned per-option counters
  - Option: labeled choice with a stable ID
  - Vote: append-only raw vote record (export/audit)
  - Tally: aggregated per-option count and percentage
  - Settings: allow_multiple, require_login, ends_at
  - User: resolved identity (opaque to the core beyond its ID)

# Invariants

Poll records maintain len(OptionVotes) == len(Options) and
Votes == sum(OptionVotes) after every successful vote. The store repairs a
mismatched OptionVotes slice (reset to zeros) before recording a vote.
*/
package models
