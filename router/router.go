// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/handlers"
	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/service"
)

// NewRouter builds the route table. db may be nil when the local store
// variant is active; the account endpoints are only mounted with a database.
func NewRouter(svc *service.Polls, db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc, db, cfg)
	votingHandler := handlers.NewVotingHandler(svc, db, cfg)
	exportHandler := handlers.NewExportHandler(svc, db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll lifecycle
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("GET /slugs/{slug}", middleware.WithLogging(pollHandler.GetPollBySlug))
	mux.HandleFunc("PUT /polls/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("POST /polls/{id}/close", middleware.WithLogging(pollHandler.ClosePoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Voting and results
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("GET /polls/{id}/tallies", middleware.WithLogging(votingHandler.GetTallies))
	mux.HandleFunc("GET /polls/{id}/export", middleware.WithLogging(exportHandler.Export))

	// Identity (requires the account database)
	if db != nil {
		userHandler := handlers.NewUserHandler(db, cfg)
		mux.HandleFunc("POST /auth/register", middleware.WithLogging(userHandler.Register))
		mux.HandleFunc("POST /auth/login", middleware.WithLogging(userHandler.Login))
		mux.HandleFunc("GET /auth/me", middleware.WithLogging(userHandler.Me))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbox API v1"))
	})

	return mux
}
