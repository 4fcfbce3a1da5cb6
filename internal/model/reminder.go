package model

import "time"

// Reminder represents a saved reminder for a chat user.
// Date and Time are stored exactly as they travel on the wire:
// "YYYY-MM-DD" and 24-hour "HH:MM".
type Reminder struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	Content   string    `gorm:"type:text;not null"`
	Date      string    `gorm:"size:10;index;not null"`
	Time      string    `gorm:"size:5;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// DateLayout and TimeLayout are the wire formats shared by the API server,
// the gateway client and the bot's button payloads.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// StoreReminderRequest is the POST /storeReminders body.
type StoreReminderRequest struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// StoreReminderResponse is the success body returned after storing a reminder.
type StoreReminderResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ReminderEntry is a single reminder as returned by the view and due routes.
type ReminderEntry struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// RemindersResponse wraps a list of reminders.
type RemindersResponse struct {
	Data []ReminderEntry `json:"data"`
}

// ErrorResponse is the body returned on any non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body returned by the health route.
type HealthResponse struct {
	Message string `json:"message"`
}
