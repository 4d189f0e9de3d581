// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollbox/auth"
	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/db"
	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/store"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// A single connection keeps the in-memory database alive for the test's
// duration.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3320,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		SessionSalt:  "test-session-salt",
		BaseURL:      "http://localhost:3320",
	}
}

// CreateTestPoll inserts a poll with the given option labels and settings
// through the store and returns the stored record.
func CreateTestPoll(t *testing.T, st store.Store, authorID string, labels []string, settings models.Settings) *models.Poll {
	t.Helper()

	options := make([]models.Option, len(labels))
	for i, label := range labels {
		options[i] = models.Option{ID: uuid.NewString(), Label: label}
	}

	poll, err := st.Create(&models.Poll{
		Title:    "Test Poll",
		Slug:     "test-poll-" + uuid.NewString()[:8],
		Options:  options,
		AuthorID: authorID,
		Settings: settings,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// RegisterTestUser inserts an account row and returns the user plus a valid
// session token for it.
func RegisterTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, email string) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{ID: uuid.NewString(), Email: email, Username: "tester"}
	_, err = conn.Exec(`
		INSERT INTO account (id, email, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Email, user.Username, hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert test account: %v", err)
	}

	token, err := auth.NewSessionToken(user.ID, cfg.SessionSalt)
	if err != nil {
		t.Fatalf("Failed to issue test session token: %v", err)
	}
	return user, token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
