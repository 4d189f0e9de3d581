// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package authz

import (
	"time"

	"github.com/danielhkuo/pollbox/models"
)

// IsOwner reports whether both ids are non-empty and equal.
func IsOwner(userID, ownerID string) bool {
	if userID == "" || ownerID == "" {
		return false
	}
	return userID == ownerID
}

// CanEditPoll grants edit rights to the poll's author and nobody else.
func CanEditPoll(user *models.User, poll *models.Poll) bool {
	if user == nil {
		return false
	}
	return IsOwner(user.ID, poll.AuthorID)
}

// CanVote reports whether a vote is allowed at the given instant. Two gates,
// both must pass: a login-required poll needs an identified user, and a poll
// whose end date has been reached accepts no further votes. A nil EndsAt
// means the poll never closes.
func CanVote(user *models.User, poll *models.Poll, now time.Time) bool {
	if poll.Settings.RequireLogin && (user == nil || user.ID == "") {
		return false
	}
	if ends := poll.Settings.EndsAt; ends != nil && !now.Before(*ends) {
		return false
	}
	return true
}
