// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service orchestrates poll operations: validation, authorization, and
store mutation live behind one boundary so handlers never duplicate business
rules.

# Vote Flow

Vote runs its checks in a fixed order:

 1. poll lookup (ErrPollNotFound)
 2. option index validation (*validate.Error)
 3. duplicate vote by voter id - authoritative (ErrDuplicateVote)
 4. duplicate vote by browser flag - best effort (ErrDuplicateVote)
 5. authorization gates: login requirement, end date (ErrVotingNotAllowed)

Only then does the store record the vote, and the browser flag is set
strictly after the write succeeds so a failed write never marks a browser as
having voted.

# Errors

Callers branch with errors.Is on the exported sentinels (ErrPollNotFound,
ErrDuplicateVote, ErrVotingNotAllowed, ErrForbidden, ErrUnauthenticated) and
with errors.As on *validate.Error for batched validation issues. Store
failures propagate wrapped; the service never retries.
*/
package service
