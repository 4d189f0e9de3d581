// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate normalizes and rejects malformed poll-creation and vote
inputs before anything touches the store.

Validation is batched: a single *Error carries every issue found so the
client can render them all at once instead of fixing one problem per round
trip.

	input, err := validate.CreatePoll(req.Title, req.Options)
	var verr *validate.Error
	if errors.As(err, &verr) {
		// verr.Issues holds human-readable messages
	}

Duplicate options (case-insensitive) are a hard failure. The deduplicated
list is computed only to detect the condition, never to silently repair it.
*/
package validate
