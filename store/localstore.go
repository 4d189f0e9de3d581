// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbox/models"
)

// Local is a JSON-file-backed store for demo and offline use. Every
// operation is a full read-modify-write of the file; a malformed or missing
// file reads as an empty collection rather than an error.
type Local struct {
	mu   sync.Mutex
	path string
}

func NewLocal(path string) *Local {
	return &Local{path: path}
}

type localData struct {
	Polls []models.Poll
	Votes []models.Vote
	Flags map[string][]string // poll id -> browser ids
}

// localPoll is the on-disk shape of a poll. Voters carries its own tag here
// because models.Poll hides it from API responses.
type localPoll struct {
	models.Poll
	Voters []string `json:"voters"`
}

type localFile struct {
	Polls []localPoll         `json:"polls"`
	Votes []models.Vote       `json:"votes"`
	Flags map[string][]string `json:"flags"`
}

func (l *Local) load() localData {
	data := localData{Flags: map[string][]string{}}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return data
	}
	var file localFile
	if err := json.Unmarshal(raw, &file); err != nil {
		// Corrupt file degrades to an empty collection.
		return localData{Flags: map[string][]string{}}
	}
	data.Polls = make([]models.Poll, 0, len(file.Polls))
	for _, lp := range file.Polls {
		p := lp.Poll
		p.Voters = lp.Voters
		data.Polls = append(data.Polls, p)
	}
	data.Votes = file.Votes
	if file.Flags != nil {
		data.Flags = file.Flags
	}
	return data
}

func (l *Local) save(data localData) error {
	file := localFile{
		Polls: make([]localPoll, 0, len(data.Polls)),
		Votes: data.Votes,
		Flags: data.Flags,
	}
	for _, p := range data.Polls {
		file.Polls = append(file.Polls, localPoll{Poll: p, Voters: p.Voters})
	}
	raw, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal local store: %w", err)
	}
	if err := os.WriteFile(l.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	return nil
}

func (l *Local) List(ownerID string) ([]models.Poll, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	if ownerID == "" {
		return data.Polls, nil
	}
	out := []models.Poll{}
	for _, p := range data.Polls {
		if p.AuthorID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (l *Local) Get(id string) (*models.Poll, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	if i := findPoll(data.Polls, id); i >= 0 {
		p := data.Polls[i]
		return &p, nil
	}
	return nil, ErrNotFound
}

func (l *Local) GetBySlug(slug string) (*models.Poll, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.load().Polls {
		if p.Slug == slug {
			out := p
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (l *Local) Create(poll *models.Poll) (*models.Poll, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

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

	data := l.load()
	// Newest first: insertion order is the display order.
	data.Polls = append([]models.Poll{p}, data.Polls...)
	if err := l.save(data); err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *Local) Update(id string, mutate func(models.Poll) models.Poll) (*models.Poll, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	i := findPoll(data.Polls, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	next := mutate(data.Polls[i])
	next.ID = id // immutable
	data.Polls[i] = next
	if err := l.save(data); err != nil {
		return nil, err
	}
	return &next, nil
}

func (l *Local) Delete(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	i := findPoll(data.Polls, id)
	if i < 0 {
		return false, nil
	}
	data.Polls = append(data.Polls[:i], data.Polls[i+1:]...)
	if err := l.save(data); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) RecordVote(id string, optionIndex int, voterID string) (*models.Poll, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	i := findPoll(data.Polls, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	p := data.Polls[i]
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return nil, ErrNotFound
	}

	p.OptionVotes = healVotes(p.OptionVotes, len(p.Options))
	p.OptionVotes[optionIndex]++
	p.Votes++
	if voterID != "" {
		p.Voters = appendVoter(p.Voters, voterID)
	}

	var voter *string
	if voterID != "" {
		voter = &voterID
	}
	data.Votes = append(data.Votes, models.Vote{
		ID:        uuid.NewString(),
		PollID:    p.ID,
		OptionID:  p.Options[optionIndex].ID,
		VoterID:   voter,
		CreatedAt: time.Now().UTC(),
	})

	data.Polls[i] = p
	if err := l.save(data); err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *Local) HasVotedFlag(pollID, browserID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.load().Flags[pollID] {
		if b == browserID {
			return true, nil
		}
	}
	return false, nil
}

func (l *Local) SetVotedFlag(pollID, browserID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	for _, b := range data.Flags[pollID] {
		if b == browserID {
			return nil
		}
	}
	data.Flags[pollID] = append(data.Flags[pollID], browserID)
	return l.save(data)
}

func (l *Local) Tallies(pollID string) ([]models.Tally, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := l.load()
	i := findPoll(data.Polls, pollID)
	if i < 0 {
		return nil, ErrNotFound
	}
	poll := data.Polls[i]

	counts := map[string]int{}
	for _, v := range data.Votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return tallyFromCounts(&poll, counts), nil
}

func (l *Local) RawVotes(pollID string) ([]models.Vote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	votes := []models.Vote{}
	for _, v := range l.load().Votes {
		if v.PollID == pollID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

func findPoll(polls []models.Poll, id string) int {
	for i, p := range polls {
		if p.ID == id {
			return i
		}
	}
	return -1
}
