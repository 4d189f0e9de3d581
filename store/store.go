// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"

	"github.com/danielhkuo/pollbox/models"
)

// ErrNotFound is returned for unknown poll ids, and by RecordVote when the
// option index is out of range.
var ErrNotFound = errors.New("poll not found")

// Store is the persistence boundary for polls, raw votes, and the
// browser-scoped voted flag. Two implementations exist: SQL (postgres or
// sqlite) and Local (a JSON file for demo/offline use).
type Store interface {
	// List returns all polls newest-first, or only those authored by
	// ownerID when it is non-empty.
	List(ownerID string) ([]models.Poll, error)

	Get(id string) (*models.Poll, error)
	GetBySlug(slug string) (*models.Poll, error)

	// Create assigns an id and creation timestamp when absent, sizes
	// OptionVotes to the option count, and persists the poll.
	Create(poll *models.Poll) (*models.Poll, error)

	// Update loads the current record, applies the pure mutator, and
	// persists the result. Last-writer-wins.
	Update(id string, mutate func(models.Poll) models.Poll) (*models.Poll, error)

	// Delete removes a poll and reports whether anything was removed.
	Delete(id string) (bool, error)

	// RecordVote increments the counter for optionIndex and the total,
	// appends voterID to the voter set exactly once when non-empty, and
	// writes the raw vote record. A mismatched OptionVotes slice is reset
	// to zeros before the increment.
	RecordVote(id string, optionIndex int, voterID string) (*models.Poll, error)

	// Browser-scoped voted flag: a best-effort duplicate-vote signal for
	// anonymous voters, never a security boundary.
	HasVotedFlag(pollID, browserID string) (bool, error)
	SetVotedFlag(pollID, browserID string) error

	// Tallies aggregates raw votes per option, in option order.
	Tallies(pollID string) ([]models.Tally, error)

	// RawVotes returns a poll's vote records ordered by creation time.
	RawVotes(pollID string) ([]models.Vote, error)
}

// tallyFromCounts builds the tally rows for a poll's options from a
// count-by-option-id map. Shared by both implementations.
func tallyFromCounts(poll *models.Poll, counts map[string]int) []models.Tally {
	total := 0
	for _, c := range counts {
		total += c
	}

	tallies := make([]models.Tally, 0, len(poll.Options))
	for _, opt := range poll.Options {
		count := counts[opt.ID]
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total) * 100
		}
		tallies = append(tallies, models.Tally{Label: opt.Label, Count: count, Percent: percent})
	}
	return tallies
}

// healVotes returns a copy of optionVotes sized to optionCount, resetting to
// zeros when the stored slice does not line up with the options.
func healVotes(optionVotes []int, optionCount int) []int {
	if len(optionVotes) != optionCount {
		return make([]int, optionCount)
	}
	out := make([]int, optionCount)
	copy(out, optionVotes)
	return out
}

// appendVoter adds voterID to the set exactly once, preserving order.
func appendVoter(voters []string, voterID string) []string {
	for _, v := range voters {
		if v == voterID {
			return voters
		}
	}
	return append(voters, voterID)
}
