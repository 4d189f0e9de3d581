// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/csvexport"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/service"
)

type ExportHandler struct {
	svc *service.Polls
	db  *sql.DB
	cfg cliparse.Config
}

func NewExportHandler(svc *service.Polls, db *sql.DB, cfg cliparse.Config) *ExportHandler {
	return &ExportHandler{svc: svc, db: db, cfg: cfg}
}

// Export handles GET /polls/{id}/export?mode={tallies|raw}
// Tallies are open to anyone and briefly cacheable; raw records are limited
// to the poll author and never cached.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "tallies"
	}

	var csv, title string
	switch mode {
	case "tallies":
		poll, err := h.svc.Get(pollID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		tallies, err := h.svc.Tallies(pollID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		title = poll.Title
		csv = csvexport.TalliesToCSV(tallies, csvexport.DefaultOptions())
		w.Header().Set("Cache-Control", "max-age=15, s-maxage=15, stale-while-revalidate=60")

	case "raw":
		user := currentUser(h.db, r, h.cfg.SessionSalt)
		poll, votes, err := h.svc.RawVotes(pollID, user)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		optionsByID := make(map[string]string, len(poll.Options))
		for _, opt := range poll.Options {
			optionsByID[opt.ID] = opt.Label
		}
		title = poll.Title
		csv = csvexport.RawVotesToCSV(poll.Title, optionsByID, votes, csvexport.DefaultOptions())
		w.Header().Set("Cache-Control", "no-store")

	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be tallies or raw")
		return
	}

	filename := fmt.Sprintf("poll-%s-%s-%s.csv",
		csvexport.SlugifyFilename(title), mode, time.Now().Format("20060102"))

	slog.Info("poll exported", "poll_id", pollID, "mode", mode)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		slog.Error("failed to write CSV response", "error", err)
	}
}
