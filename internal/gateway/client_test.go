package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haleemairfan/ReminderBot/internal/model"
)

func TestCreateReminderSuccess(t *testing.T) {
	t.Parallel()

	var got model.StoreReminderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/storeReminders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.StoreReminderResponse{Message: "Reminder stored successfully!", ID: "17"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	id, err := client.CreateReminder(context.Background(), 42, "Buy milk", "2024-03-06", "18:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "17" {
		t.Fatalf("expected id 17, got %q", id)
	}
	if got.UserID != 42 || got.Content != "Buy milk" || got.Date != "2024-03-06" || got.Time != "18:30" {
		t.Fatalf("unexpected request body: %+v", got)
	}
}

func TestCreateReminderStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"database exploded"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateReminder(context.Background(), 1, "x", "2024-03-06", "09:00")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected code 500, got %d", statusErr.Code)
	}
	if statusErr.Body != `{"error":"database exploded"}` {
		t.Fatalf("expected verbatim body, got %q", statusErr.Body)
	}
}

func TestQueryReminders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/viewReminders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("user_id") != "42" || r.URL.Query().Get("date") != "2024-03-06" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(model.RemindersResponse{Data: []model.ReminderEntry{
			{UserID: 42, Content: "Buy milk", Date: "2024-03-06", Time: "18:30"},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.QueryReminders(context.Background(), 42, "2024-03-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "Buy milk" || entries[0].Time != "18:30" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDueReminders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dueReminders" || r.URL.Query().Get("date") != "2024-03-04" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(model.RemindersResponse{Data: []model.ReminderEntry{
			{UserID: 1, Content: "standup", Date: "2024-03-04", Time: "09:00"},
			{UserID: 2, Content: "gym", Date: "2024-03-04", Time: "18:00"},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.DueReminders(context.Background(), "2024-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %+v", entries)
	}
}

func TestQueryRemindersNotFoundStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.QueryReminders(context.Background(), 1, "2024-03-06")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadGateway || statusErr.Body != "upstream down" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}
