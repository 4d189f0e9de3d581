// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePoll_Valid(t *testing.T) {
	got, err := CreatePoll("  Favorite language?  ", []string{" Go ", "Rust", "  Zig"})
	require.NoError(t, err)
	assert.Equal(t, "Favorite language?", got.Title)
	assert.Equal(t, []string{"Go", "Rust", "Zig"}, got.Options)
}

func TestCreatePoll_TitleErrors(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty title", "", "Title is required"},
		{"whitespace title", "   ", "Title is required"},
		{"one char", "a", "Title must be at least 3 characters"},
		{"two chars after trim", " ab ", "Title must be at least 3 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreatePoll(tt.title, []string{"A", "B"})
			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Issues, tt.want)
		})
	}
}

func TestCreatePoll_OptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		want    string
	}{
		{"no options", nil, "Provide at least 2 options"},
		{"one option", []string{"A"}, "Provide at least 2 options"},
		{"empty strings dropped", []string{"A", "  ", ""}, "Provide at least 2 options"},
		{"too many", []string{"A", "B", "C", "D", "E", "F", "G"}, "Provide no more than 6 options"},
		{"exact duplicate", []string{"A", "B", "A"}, "Options must be unique (case-insensitive)"},
		{"case-insensitive duplicate", []string{"Go", "go", "Rust"}, "Options must be unique (case-insensitive)"},
		{"duplicate after trim", []string{" Go", "Go ", "Rust"}, "Options must be unique (case-insensitive)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreatePoll("Valid title", tt.options)
			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Issues, tt.want)
		})
	}
}

func TestCreatePoll_BatchesIssues(t *testing.T) {
	_, err := CreatePoll("a", []string{"only"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Issues, 2)
}

func TestCreatePoll_BoundaryCounts(t *testing.T) {
	two, err := CreatePoll("Pick one", []string{"A", "B"})
	require.NoError(t, err)
	assert.Len(t, two.Options, 2)

	six, err := CreatePoll("Pick one", []string{"A", "B", "C", "D", "E", "F"})
	require.NoError(t, err)
	assert.Len(t, six.Options, 6)
}

func TestVote(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		count       int
		wantErr     bool
		wantMessage string
	}{
		{"first option", 0, 3, false, ""},
		{"last option", 2, 3, false, ""},
		{"negative index", -1, 3, true, "option index must be >= 0"},
		{"index equals count", 3, 3, true, "option index is out of range"},
		{"index beyond count", 10, 3, true, "option index is out of range"},
		{"zero options count", 0, 0, true, "options count must be > 0 when provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Vote(tt.index, tt.count)
			if tt.wantErr {
				var verr *Error
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Issues, tt.wantMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.index, got.OptionIndex)
		})
	}
}

func TestVote_NegativeIndexWithCount(t *testing.T) {
	_, err := Vote(-1, 3)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Issues, 2)
	assert.Contains(t, verr.Issues, "option index must be >= 0")
	assert.Contains(t, verr.Issues, "option index is out of range")
}

func TestVote_WithoutCount(t *testing.T) {
	got, err := Vote(41)
	require.NoError(t, err)
	assert.Equal(t, 41, got.OptionIndex)

	_, err = Vote(-1)
	assert.Error(t, err)
}

func TestError_Message(t *testing.T) {
	err := &Error{Message: "vote validation failed", Issues: []string{"a", "b"}}
	assert.Equal(t, "vote validation failed: a; b", err.Error())

	bare := &Error{Message: "bad input"}
	assert.Equal(t, "bad input", bare.Error())
}
