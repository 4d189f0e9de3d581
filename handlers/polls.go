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

type PollHandler struct {
	svc *service.Polls
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(svc *service.Polls, db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{svc: svc, db: db, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := currentUser(h.db, r, h.cfg.SessionSalt)
	poll, err := h.svc.Create(req, user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "author", poll.AuthorName)

	middleware.JSONResponse(w, http.StatusCreated, h.svc.View(poll))
}

// ListPolls handles GET /polls
// Optional ?author_id= filters to a single author's polls.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.URL.Query().Get("author_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := h.svc.Get(pollID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.svc.View(poll))
}

// GetPollBySlug handles GET /slugs/{slug}
func (h *PollHandler) GetPollBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	poll, err := h.svc.GetBySlug(slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.svc.View(poll))
}

// UpdatePoll handles PUT /polls/{id}
// Author-only replace-in-place of title, description, and options.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := currentUser(h.db, r, h.cfg.SessionSalt)
	poll, err := h.svc.Update(pollID, req, user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("poll updated", "poll_id", poll.ID)

	middleware.JSONResponse(w, http.StatusOK, h.svc.View(poll))
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	user := currentUser(h.db, r, h.cfg.SessionSalt)
	poll, err := h.svc.Close(pollID, user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("poll closed", "poll_id", poll.ID)

	middleware.JSONResponse(w, http.StatusOK, h.svc.View(poll))
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	user := currentUser(h.db, r, h.cfg.SessionSalt)
	deleted, err := h.svc.Remove(pollID, user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	slog.Info("poll deleted", "poll_id", pollID, "deleted", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.DeletePollResponse{Deleted: deleted})
}
