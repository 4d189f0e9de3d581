// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinTitleLength is the minimum number of characters for a poll title.
const MinTitleLength = 3

// Bounds for the number of options a poll can carry.
const (
	MinOptions = 2
	MaxOptions = 6
)

// Error reports every problem found in one pass rather than failing on the
// first, so clients can show all issues at once.
type Error struct {
	Message string
	Issues  []string
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Issues, "; ")
}

// CreatePollInput is the normalized result of CreatePoll.
type CreatePollInput struct {
	Title   string
	Options []string
}

// VoteInput is the validated result of Vote.
type VoteInput struct {
	OptionIndex int
}

// CreatePoll normalizes and validates poll-creation input. Title and options
// are trimmed, empty options dropped, and duplicates (case-insensitive) are a
// hard failure rather than being silently collapsed.
func CreatePoll(title string, options []string) (CreatePollInput, error) {
	var issues []string

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		issues = append(issues, "Title is required")
	} else if utf8.RuneCountInString(trimmed) < MinTitleLength {
		issues = append(issues, fmt.Sprintf("Title must be at least %d characters", MinTitleLength))
	}

	cleaned := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o != "" {
			cleaned = append(cleaned, o)
		}
	}

	if len(cleaned) < MinOptions {
		issues = append(issues, fmt.Sprintf("Provide at least %d options", MinOptions))
	}
	if len(cleaned) > MaxOptions {
		issues = append(issues, fmt.Sprintf("Provide no more than %d options", MaxOptions))
	}

	if len(uniqueFold(cleaned)) != len(cleaned) {
		issues = append(issues, "Options must be unique (case-insensitive)")
	}

	if len(issues) > 0 {
		return CreatePollInput{}, &Error{Message: "create poll validation failed", Issues: issues}
	}

	return CreatePollInput{Title: trimmed, Options: cleaned}, nil
}

// Vote validates a selected option index. When optionsCount is supplied the
// index is additionally bounds-checked against it.
func Vote(optionIndex int, optionsCount ...int) (VoteInput, error) {
	var issues []string

	if optionIndex < 0 {
		issues = append(issues, "option index must be >= 0")
	}

	if len(optionsCount) > 0 {
		count := optionsCount[0]
		if count <= 0 {
			issues = append(issues, "options count must be > 0 when provided")
		} else if optionIndex < 0 || optionIndex >= count {
			issues = append(issues, "option index is out of range")
		}
	}

	if len(issues) > 0 {
		return VoteInput{}, &Error{Message: "vote validation failed", Issues: issues}
	}

	return VoteInput{OptionIndex: optionIndex}, nil
}

// uniqueFold keeps the first occurrence of each option under case-insensitive
// comparison, preserving order.
func uniqueFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
