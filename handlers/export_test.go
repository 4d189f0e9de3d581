// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/testutil"
)

func TestExportTallies(t *testing.T) {
	conn, st, svc, cfg := setupPollEnv(t)
	handler := NewExportHandler(svc, conn, cfg)

	poll := testutil.CreateTestPoll(t, st, "", []string{"Go", "Rust"}, models.Settings{})
	if _, err := st.RecordVote(poll.ID, 0, ""); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("GET", "/polls/"+poll.ID+"/export", nil, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()

	handler.Export(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Expected CSV content type, got '%s'", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="poll-test-poll-tallies-`) {
		t.Errorf("Unexpected Content-Disposition '%s'", cd)
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=15") {
		t.Errorf("Expected short-lived cache headers, got '%s'", cc)
	}

	body := w.Body.String()
	if !strings.HasPrefix(body, "\uFEFF") {
		t.Error("Expected BOM prefix for spreadsheet compatibility")
	}
	if !strings.Contains(body, "Option,Count,Percent\r\n") {
		t.Error("Expected tallies header row")
	}
	if !strings.Contains(body, "Go,1,100\r\n") {
		t.Errorf("Expected Go row, body: %q", body)
	}
}

func TestExportRaw(t *testing.T) {
	conn, st, svc, cfg := setupPollEnv(t)
	handler := NewExportHandler(svc, conn, cfg)

	owner, ownerToken := testutil.RegisterTestUser(t, conn, cfg, "owner@example.com")
	poll := testutil.CreateTestPoll(t, st, owner.ID, []string{"Go", "Rust"}, models.Settings{})
	if _, err := st.RecordVote(poll.ID, 1, "someone"); err != nil {
		t.Fatal(err)
	}

	t.Run("anonymous is rejected", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/"+poll.ID+"/export?mode=raw", nil, nil)
		req.SetPathValue("id", poll.ID)
		w := httptest.NewRecorder()

		handler.Export(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("author downloads raw records", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/"+poll.ID+"/export?mode=raw", nil, bearer(ownerToken))
		req.SetPathValue("id", poll.ID)
		w := httptest.NewRecorder()

		handler.Export(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
			t.Errorf("Raw export must not be cached, got '%s'", cc)
		}

		body := w.Body.String()
		if !strings.Contains(body, "Poll,Option,VoterId,CreatedAt\r\n") {
			t.Error("Expected raw header row")
		}
		if !strings.Contains(body, "Test Poll,Rust,someone,") {
			t.Errorf("Expected vote row, body: %q", body)
		}
	})
}

func TestExportInvalidMode(t *testing.T) {
	conn, st, svc, cfg := setupPollEnv(t)
	handler := NewExportHandler(svc, conn, cfg)

	poll := testutil.CreateTestPoll(t, st, "", []string{"A", "B"}, models.Settings{})

	req := testutil.MakeRequest("GET", "/polls/"+poll.ID+"/export?mode=xml", nil, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()

	handler.Export(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestExportUnknownPoll(t *testing.T) {
	conn, _, svc, cfg := setupPollEnv(t)
	handler := NewExportHandler(svc, conn, cfg)

	req := testutil.MakeRequest("GET", "/polls/missing/export", nil, nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.Export(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
