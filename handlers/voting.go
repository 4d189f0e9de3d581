// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/service"
)

type VotingHandler struct {
	svc *service.Polls
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(svc *service.Polls, db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, db: db, cfg: cfg}
}

// Vote handles POST /polls/{id}/vote
// The optional X-Browser-Token header feeds the best-effort duplicate-vote
// flag for anonymous voters.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := currentUser(h.db, r, h.cfg.SessionSalt)
	poll, err := h.svc.Vote(pollID, req.OptionIndex, user, middleware.BrowserToken(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("vote recorded", "poll_id", poll.ID, "option_index", req.OptionIndex)

	middleware.JSONResponse(w, http.StatusOK, h.svc.View(poll))
}

// GetTallies handles GET /polls/{id}/tallies
// Aggregated counts are public; raw records are not served here.
func (h *VotingHandler) GetTallies(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	tallies, err := h.svc.Tallies(pollID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tallies)
}
