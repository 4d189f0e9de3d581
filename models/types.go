// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreatePollRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Options       []string   `json:"options"`
	AllowMultiple bool       `json:"allow_multiple"`
	RequireLogin  bool       `json:"require_login"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
}

type UpdatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type VoteRequest struct {
	OptionIndex int `json:"option_index"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

type SessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type DeletePollResponse struct {
	Deleted bool `json:"deleted"`
}

// Domain types

// Option is one selectable choice in a poll. Option IDs are assigned at
// creation time and referenced by raw vote records.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Settings control who may vote on a poll and until when. A nil EndsAt
// means the poll never closes.
type Settings struct {
	AllowMultiple bool       `json:"allow_multiple"`
	RequireLogin  bool       `json:"require_login"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
}

// Poll is the stored poll record. OptionVotes is index-aligned with Options
// and Votes is kept equal to the sum of OptionVotes after every recorded vote.
type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	Options     []Option  `json:"options"`
	OptionVotes []int     `json:"option_votes"`
	Votes       int       `json:"votes"`
	AuthorID    string    `json:"author_id,omitempty"`
	AuthorName  string    `json:"author_name"`
	Voters      []string  `json:"-"` // user ids that voted; never exposed
	Settings    Settings  `json:"settings"`
	CreatedAt   time.Time `json:"created_at"`
}

// PollView is a Poll plus display fields derived for clients.
type PollView struct {
	Poll
	CreatedAgo string `json:"created_ago"`
	Closed     bool   `json:"closed"`
	ShareURL   string `json:"share_url,omitempty"`
}

// Vote is an append-only raw vote record, written alongside the counter
// update and never mutated afterwards.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	VoterID   *string   `json:"voter_id"` // nil for anonymous votes
	CreatedAt time.Time `json:"created_at"`
}

// Tally is an aggregated per-option count with its share of the total.
type Tally struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// User is the identity the auth layer resolves from a session token.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}
