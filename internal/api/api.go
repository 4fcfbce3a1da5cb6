// Package api implements the reminder store's HTTP interface:
// POST /storeReminders, GET /viewReminders, GET /dueReminders and a
// health route at /.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/haleemairfan/ReminderBot/internal/model"
	"gorm.io/gorm"
)

// Server holds the handlers for the reminder store API.
type Server struct {
	db     *gorm.DB
	logger *log.Logger
}

// New creates an API server over the given database connection.
func New(db *gorm.DB, logger *log.Logger) *Server {
	return &Server{db: db, logger: logger}
}

// Handler returns the route mux for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/storeReminders", s.handleStoreReminders)
	mux.HandleFunc("/viewReminders", s.handleViewReminders)
	mux.HandleFunc("/dueReminders", s.handleDueReminders)
	mux.HandleFunc("/", s.handleHealth)
	return mux
}

func (s *Server) handleStoreReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req model.StoreReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validateReminder(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reminder := model.Reminder{
		UserID:  req.UserID,
		Content: req.Content,
		Date:    req.Date,
		Time:    req.Time,
	}
	if err := s.db.Create(&reminder).Error; err != nil {
		s.logger.Printf("store reminder: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to store reminder")
		return
	}

	s.writeJSON(w, http.StatusCreated, model.StoreReminderResponse{
		Message: "Reminder stored successfully!",
		ID:      strconv.FormatUint(uint64(reminder.ID), 10),
	})
}

func (s *Server) handleViewReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "user_id must be an integer")
		return
	}
	date := r.URL.Query().Get("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	var reminders []model.Reminder
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).
		Order("time ASC, created_at ASC").
		Find(&reminders).Error; err != nil {
		s.logger.Printf("view reminders: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch reminders")
		return
	}

	s.writeJSON(w, http.StatusOK, model.RemindersResponse{Data: toEntries(reminders)})
}

// handleDueReminders returns every user's reminders for a single date.
// The bot's morning delivery job is its only caller.
func (s *Server) handleDueReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	var reminders []model.Reminder
	if err := s.db.Where("date = ?", date).
		Order("user_id ASC, time ASC, created_at ASC").
		Find(&reminders).Error; err != nil {
		s.logger.Printf("due reminders: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch reminders")
		return
	}

	s.writeJSON(w, http.StatusOK, model.RemindersResponse{Data: toEntries(reminders)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, model.HealthResponse{Message: "Reminder API is running."})
}

// validateReminder rejects partially-filled records; the store never holds one.
func validateReminder(req model.StoreReminderRequest) error {
	if req.UserID == 0 {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return errors.New("all fields (content, date, and time) are required")
	}
	if req.Date == "" || req.Time == "" {
		return errors.New("all fields (content, date, and time) are required")
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return fmt.Errorf("date %q must be in YYYY-MM-DD format", req.Date)
	}
	if _, err := time.Parse(model.TimeLayout, req.Time); err != nil {
		return fmt.Errorf("time %q must be in HH:MM format", req.Time)
	}
	return nil
}

func toEntries(reminders []model.Reminder) []model.ReminderEntry {
	entries := make([]model.ReminderEntry, 0, len(reminders))
	for _, r := range reminders {
		entries = append(entries, model.ReminderEntry{
			UserID:  r.UserID,
			Content: r.Content,
			Date:    r.Date,
			Time:    r.Time,
		})
	}
	return entries
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Printf("api: marshal response: %v", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Printf("api: write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, model.ErrorResponse{Error: message})
}
