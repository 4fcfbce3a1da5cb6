// Package gateway provides the HTTP client for the reminder store API.
// The bot never talks to the database directly; this client is its only
// storage surface. Failed calls are reported, never retried.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/haleemairfan/ReminderBot/internal/model"
)

// Client is an HTTP client for the reminder store API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a store client bound to baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StatusError reports a non-2xx response from the store, carrying the raw
// status code and body so callers can surface them verbatim.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store returned status %d: %s", e.Code, e.Body)
}

// CreateReminder stores a completed reminder and returns the record id.
func (c *Client) CreateReminder(ctx context.Context, userID int64, content, date, timeStr string) (string, error) {
	payload, err := json.Marshal(model.StoreReminderRequest{
		UserID:  userID,
		Content: content,
		Date:    date,
		Time:    timeStr,
	})
	if err != nil {
		return "", fmt.Errorf("encode reminder: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/storeReminders", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("store reminder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", newStatusError(resp)
	}

	var stored model.StoreReminderResponse
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return "", fmt.Errorf("decode store response: %w", err)
	}
	return stored.ID, nil
}

// QueryReminders fetches one user's reminders for a single date.
func (c *Client) QueryReminders(ctx context.Context, userID int64, date string) ([]model.ReminderEntry, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))
	query.Set("date", date)
	return c.fetchReminders(ctx, "/viewReminders", query)
}

// DueReminders fetches every user's reminders for a single date.
func (c *Client) DueReminders(ctx context.Context, date string) ([]model.ReminderEntry, error) {
	query := url.Values{}
	query.Set("date", date)
	return c.fetchReminders(ctx, "/dueReminders", query)
}

func (c *Client) fetchReminders(ctx context.Context, path string, query url.Values) ([]model.ReminderEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp)
	}

	var reminders model.RemindersResponse
	if err := json.NewDecoder(resp.Body).Decode(&reminders); err != nil {
		return nil, fmt.Errorf("decode reminders response: %w", err)
	}
	return reminders.Data, nil
}

func newStatusError(resp *http.Response) *StatusError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		body = nil
	}
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
