// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/pollbox/authz"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/store"
	"github.com/danielhkuo/pollbox/validate"
)

// Classified service errors. Callers branch on these with errors.Is;
// validation failures surface separately as *validate.Error.
var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrDuplicateVote    = errors.New("duplicate vote")
	ErrVotingNotAllowed = errors.New("voting not allowed")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

// Polls orchestrates validation, authorization, and the store. baseURL is the
// public address share links are built against; empty disables them.
type Polls struct {
	store   store.Store
	baseURL string
}

func New(st store.Store, baseURL string) *Polls {
	return &Polls{store: st, baseURL: baseURL}
}

// List returns poll views, newest first, optionally filtered to one author.
func (s *Polls) List(ownerID string) ([]models.PollView, error) {
	polls, err := s.store.List(ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]models.PollView, 0, len(polls))
	for _, p := range polls {
		views = append(views, View(&p, s.baseURL))
	}
	return views, nil
}

func (s *Polls) Get(id string) (*models.Poll, error) {
	p, err := s.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPollNotFound
	}
	return p, err
}

func (s *Polls) GetBySlug(slug string) (*models.Poll, error) {
	p, err := s.store.GetBySlug(slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPollNotFound
	}
	return p, err
}

// Create validates the input, derives the slug and author display fields,
// and persists a new poll.
func (s *Polls) Create(input models.CreatePollRequest, user *models.User) (*models.Poll, error) {
	parsed, err := validate.CreatePoll(input.Title, input.Options)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	options := make([]models.Option, len(parsed.Options))
	for i, label := range parsed.Options {
		options[i] = models.Option{ID: uuid.NewString(), Label: label}
	}

	poll := &models.Poll{
		ID:          id,
		Title:       parsed.Title,
		Description: strings.TrimSpace(input.Description),
		Slug:        slugForPoll(parsed.Title, id),
		Options:     options,
		AuthorID:    authorID(user),
		AuthorName:  authorName(user),
		Voters:      []string{},
		Settings: models.Settings{
			AllowMultiple: input.AllowMultiple,
			RequireLogin:  input.RequireLogin,
			EndsAt:        input.EndsAt,
		},
	}

	created, err := s.store.Create(poll)
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return created, nil
}

// Vote applies one vote for a poll option. Duplicate prevention runs before
// the authorization gates: the voter-id check against the poll's voter set is
// authoritative, the browser flag is a best-effort second signal. The flag is
// set only after the vote persisted.
func (s *Polls) Vote(pollID string, optionIndex int, user *models.User, browserID string) (*models.Poll, error) {
	poll, err := s.Get(pollID)
	if err != nil {
		return nil, err
	}

	if _, err := validate.Vote(optionIndex, len(poll.Options)); err != nil {
		return nil, err
	}

	voterID := authorID(user)
	if voterID != "" {
		for _, v := range poll.Voters {
			if v == voterID {
				return nil, fmt.Errorf("%w: user has already voted", ErrDuplicateVote)
			}
		}
	}
	if browserID != "" {
		flagged, err := s.store.HasVotedFlag(pollID, browserID)
		if err != nil {
			return nil, err
		}
		if flagged {
			return nil, fmt.Errorf("%w: this browser has already voted on this poll", ErrDuplicateVote)
		}
	}

	if !authz.CanVote(user, poll, time.Now()) {
		return nil, fmt.Errorf("%w: poll is closed or login required", ErrVotingNotAllowed)
	}

	updated, err := s.store.RecordVote(pollID, optionIndex, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	if browserID != "" {
		// Best-effort: a failed flag write must not fail the vote.
		if err := s.store.SetVotedFlag(pollID, browserID); err != nil {
			slog.Warn("failed to set voted flag", "poll_id", pollID, "error", err)
		}
	}

	return updated, nil
}

// Update replaces title, description, and options in place. Author only.
// Counters carry over for options whose label survives the edit and reset
// for new ones.
func (s *Polls) Update(pollID string, input models.UpdatePollRequest, user *models.User) (*models.Poll, error) {
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}

	poll, err := s.Get(pollID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditPoll(user, poll) {
		return nil, fmt.Errorf("%w: only the author may edit a poll", ErrForbidden)
	}

	parsed, err := validate.CreatePoll(input.Title, input.Options)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(pollID, func(p models.Poll) models.Poll {
		existing := make(map[string]int, len(p.Options)) // folded label -> index
		for i, opt := range p.Options {
			existing[strings.ToLower(opt.Label)] = i
		}
		votes := healVotesFor(&p)

		options := make([]models.Option, len(parsed.Options))
		counts := make([]int, len(parsed.Options))
		for i, label := range parsed.Options {
			if j, ok := existing[strings.ToLower(label)]; ok {
				options[i] = models.Option{ID: p.Options[j].ID, Label: label}
				counts[i] = votes[j]
			} else {
				options[i] = models.Option{ID: uuid.NewString(), Label: label}
			}
		}

		total := 0
		for _, c := range counts {
			total += c
		}

		p.Title = parsed.Title
		p.Description = strings.TrimSpace(input.Description)
		p.Slug = slugForPoll(parsed.Title, p.ID)
		p.Options = options
		p.OptionVotes = counts
		p.Votes = total
		return p
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPollNotFound
	}
	return updated, err
}

// Close stops further voting by setting the poll's end date to now, leaving
// the other settings intact. Closing an already-closed poll just moves the
// timestamp.
func (s *Polls) Close(pollID string, user *models.User) (*models.Poll, error) {
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}

	poll, err := s.Get(pollID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditPoll(user, poll) {
		return nil, fmt.Errorf("%w: only the author may close a poll", ErrForbidden)
	}

	now := time.Now().UTC()
	updated, err := s.store.Update(pollID, func(p models.Poll) models.Poll {
		p.Settings.EndsAt = &now
		return p
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPollNotFound
	}
	return updated, err
}

// Remove deletes a poll. Author only; reports whether anything was removed.
func (s *Polls) Remove(pollID string, user *models.User) (bool, error) {
	if user == nil || user.ID == "" {
		return false, ErrUnauthenticated
	}

	poll, err := s.Get(pollID)
	if err != nil {
		return false, err
	}
	if !authz.CanEditPoll(user, poll) {
		return false, fmt.Errorf("%w: only the author may delete a poll", ErrForbidden)
	}

	return s.store.Delete(pollID)
}

// Tallies aggregates raw votes per option for a poll.
func (s *Polls) Tallies(pollID string) ([]models.Tally, error) {
	tallies, err := s.store.Tallies(pollID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPollNotFound
	}
	return tallies, err
}

// RawVotes returns the poll's individual vote records. Author only.
func (s *Polls) RawVotes(pollID string, user *models.User) (*models.Poll, []models.Vote, error) {
	poll, err := s.Get(pollID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !authz.IsOwner(user.ID, poll.AuthorID) {
		return nil, nil, fmt.Errorf("%w: raw export is limited to the poll author", ErrForbidden)
	}

	votes, err := s.store.RawVotes(pollID)
	if err != nil {
		return nil, nil, err
	}
	return poll, votes, nil
}

// View derives the display fields clients render alongside a poll. The share
// link points at the slug lookup route and is omitted when baseURL is unset.
func View(p *models.Poll, baseURL string) models.PollView {
	ends := p.Settings.EndsAt
	view := models.PollView{
		Poll:       *p,
		CreatedAgo: humanize.Time(p.CreatedAt),
		Closed:     ends != nil && !time.Now().Before(*ends),
	}
	if baseURL != "" && p.Slug != "" {
		view.ShareURL = strings.TrimRight(baseURL, "/") + "/slugs/" + p.Slug
	}
	return view
}

// View renders a poll with the service's configured base URL.
func (s *Polls) View(p *models.Poll) models.PollView {
	return View(p, s.baseURL)
}

func authorID(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.ID
}

func authorName(user *models.User) string {
	if user == nil {
		return "Anonymous"
	}
	if user.Username != "" {
		return user.Username
	}
	if user.Email != "" {
		return user.Email
	}
	return "Anonymous"
}

func healVotesFor(p *models.Poll) []int {
	if len(p.OptionVotes) != len(p.Options) {
		return make([]int, len(p.Options))
	}
	return p.OptionVotes
}

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// slugForPoll turns a title into a URL-safe slug, suffixed with a fragment
// of the poll id so two polls with the same title stay addressable.
func slugForPoll(title, id string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if s == "" {
		return "poll-" + suffix
	}
	return s + "-" + suffix
}
