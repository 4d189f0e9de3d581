// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/service"
	"github.com/danielhkuo/pollbox/validate"
)

// writeServiceError maps classified service errors onto HTTP status codes.
// Anything unclassified is a storage failure and surfaces as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		middleware.IssuesResponse(w, http.StatusBadRequest, verr.Message, verr.Issues)
	case errors.Is(err, service.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, service.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted")
	case errors.Is(err, service.ErrVotingNotAllowed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Poll is closed or login required")
	case errors.Is(err, service.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrUnauthenticated):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// currentUser resolves the request's user from its bearer token. Anonymous
// requests and invalid tokens resolve to nil. With no account database (the
// local store variant) the token's user id is trusted as-is.
func currentUser(db *sql.DB, r *http.Request, sessionSalt string) *models.User {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil
	}

	userID, err := auth.VerifySessionToken(token, sessionSalt)
	if err != nil {
		return nil
	}

	if db == nil {
		return &models.User{ID: userID}
	}

	var u models.User
	err = db.QueryRow(`
		SELECT id, email, username FROM account WHERE id = $1
	`, userID).Scan(&u.ID, &u.Email, &u.Username)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		return nil
	}
	return &u
}
