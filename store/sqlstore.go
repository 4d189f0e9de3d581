// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbox/models"
)

// SQL persists polls and votes in a relational database (postgres or
// sqlite). Poll options, counters, and the voter set travel as JSON columns
// so a poll row round-trips as one document.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

const pollColumns = `id, title, description, slug, author_id, author_name,
       options, option_votes, votes, voters,
       allow_multiple, require_login, ends_at, created_at`

func (s *SQL) List(ownerID string) ([]models.Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM poll ORDER BY created_at DESC`
	args := []any{}
	if ownerID != "" {
		query = `SELECT ` + pollColumns + ` FROM poll WHERE author_id = $1 ORDER BY created_at DESC`
		args = append(args, ownerID)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, *p)
	}
	return polls, rows.Err()
}

func (s *SQL) Get(id string) (*models.Poll, error) {
	return s.getWhere("id", id)
}

func (s *SQL) GetBySlug(slug string) (*models.Poll, error) {
	return s.getWhere("slug", slug)
}

func (s *SQL) getWhere(column, value string) (*models.Poll, error) {
	row := s.db.QueryRow(`SELECT `+pollColumns+` FROM poll WHERE `+column+` = $1 ORDER BY created_at DESC LIMIT 1`, value)
	p, err := scanPoll(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *SQL) Create(poll *models.Poll) (*models.Poll, error) {
	p := *poll
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.OptionVotes = make([]int, len(p.Options))
	p.Votes = 0
	if p.Voters == nil {
		p.Voters = []string{}
	}
	if p.AuthorName == "" {
		p.AuthorName = "Anonymous"
	}

	options, optionVotes, voters, err := marshalPollJSON(&p)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		INSERT INTO poll (id, title, description, slug, author_id, author_name,
		                  options, option_votes, votes, voters,
		                  allow_multiple, require_login, ends_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, p.ID, p.Title, p.Description, p.Slug, p.AuthorID, p.AuthorName,
		options, optionVotes, p.Votes, voters,
		p.Settings.AllowMultiple, p.Settings.RequireLogin, nullTime(p.Settings.EndsAt), p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	return &p, nil
}

func (s *SQL) Update(id string, mutate func(models.Poll) models.Poll) (*models.Poll, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+pollColumns+` FROM poll WHERE id = $1`, id)
	current, err := scanPoll(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	next := mutate(*current)
	next.ID = current.ID // immutable
	if err := writePoll(tx, &next); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}
	return &next, nil
}

func (s *SQL) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQL) RecordVote(id string, optionIndex int, voterID string) (*models.Poll, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+pollColumns+` FROM poll WHERE id = $1`, id)
	p, err := scanPoll(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return nil, ErrNotFound
	}

	p.OptionVotes = healVotes(p.OptionVotes, len(p.Options))
	p.OptionVotes[optionIndex]++
	p.Votes++
	if voterID != "" {
		p.Voters = appendVoter(p.Voters, voterID)
	}

	if err := writePoll(tx, p); err != nil {
		return nil, err
	}

	var voter any
	if voterID != "" {
		voter = voterID
	}
	_, err = tx.Exec(`
		INSERT INTO vote (id, poll_id, option_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), p.ID, p.Options[optionIndex].ID, voter, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}
	return p, nil
}

func (s *SQL) HasVotedFlag(pollID, browserID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM voted_flag WHERE poll_id = $1 AND browser_id = $2)
	`, pollID, browserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query voted flag: %w", err)
	}
	return exists, nil
}

func (s *SQL) SetVotedFlag(pollID, browserID string) error {
	_, err := s.db.Exec(`
		INSERT INTO voted_flag (poll_id, browser_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, browser_id) DO NOTHING
	`, pollID, browserID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set voted flag: %w", err)
	}
	return nil
}

func (s *SQL) Tallies(pollID string) ([]models.Tally, error) {
	poll, err := s.Get(pollID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT option_id, COUNT(*) FROM vote WHERE poll_id = $1 GROUP BY option_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate votes: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, err
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tallyFromCounts(poll, counts), nil
}

func (s *SQL) RawVotes(pollID string) ([]models.Vote, error) {
	rows, err := s.db.Query(`
		SELECT id, poll_id, option_id, voter_id, created_at
		FROM vote
		WHERE poll_id = $1
		ORDER BY created_at, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var voter sql.NullString
		if err := rows.Scan(&v.ID, &v.PollID, &v.OptionID, &voter, &v.CreatedAt); err != nil {
			return nil, err
		}
		if voter.Valid {
			v.VoterID = &voter.String
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// writePoll updates every mutable column of a poll row.
func writePoll(tx *sql.Tx, p *models.Poll) error {
	options, optionVotes, voters, err := marshalPollJSON(p)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		UPDATE poll
		SET title = $1, description = $2, slug = $3,
		    options = $4, option_votes = $5, votes = $6, voters = $7,
		    allow_multiple = $8, require_login = $9, ends_at = $10
		WHERE id = $11
	`, p.Title, p.Description, p.Slug,
		options, optionVotes, p.Votes, voters,
		p.Settings.AllowMultiple, p.Settings.RequireLogin, nullTime(p.Settings.EndsAt), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	return nil
}

func marshalPollJSON(p *models.Poll) (options, optionVotes, voters string, err error) {
	ob, err := json.Marshal(p.Options)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal options: %w", err)
	}
	vb, err := json.Marshal(p.OptionVotes)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal option votes: %w", err)
	}
	rb, err := json.Marshal(p.Voters)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal voters: %w", err)
	}
	return string(ob), string(vb), string(rb), nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*models.Poll, error) {
	var p models.Poll
	var options, optionVotes, voters string
	var endsAt sql.NullTime

	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Slug, &p.AuthorID, &p.AuthorName,
		&options, &optionVotes, &p.Votes, &voters,
		&p.Settings.AllowMultiple, &p.Settings.RequireLogin, &endsAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &p.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	if err := json.Unmarshal([]byte(optionVotes), &p.OptionVotes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal option votes: %w", err)
	}
	if err := json.Unmarshal([]byte(voters), &p.Voters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal voters: %w", err)
	}
	if endsAt.Valid {
		t := endsAt.Time
		p.Settings.EndsAt = &t
	}
	return &p, nil
}
