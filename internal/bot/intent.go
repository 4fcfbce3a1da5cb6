package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/haleemairfan/ReminderBot/internal/model"
)

// Event is a normalized inbound transport event. Exactly one of Text or
// Payload is set: Text for commands and free-form messages, Payload for
// button taps.
type Event struct {
	UserID  int64
	Text    string
	Payload string
	IsGroup bool
}

// IntentKind identifies the abstract action behind an inbound event.
type IntentKind int

const (
	// IntentStart greets the user and offers the entry button.
	IntentStart IntentKind = iota
	// IntentHelp asks for usage guidance.
	IntentHelp
	// IntentSet asks to begin setting reminders.
	IntentSet
	// IntentView asks for the view-mode day picker.
	IntentView
	// IntentCreateReminders asks for the create-mode day picker.
	IntentCreateReminders
	// IntentDaySelected carries a day picked from the create picker.
	IntentDaySelected
	// IntentViewDay carries a day picked from the view picker.
	IntentViewDay
	// IntentStoreReminder announces that the next free-text message is a reminder.
	IntentStoreReminder
	// IntentExit abandons the current flow.
	IntentExit
	// IntentText is a free-form text message.
	IntentText
)

// Intent is the tagged variant consumed by the state machine.
type Intent struct {
	Kind    IntentKind
	Date    time.Time // IntentDaySelected, IntentViewDay
	Text    string    // IntentText
	IsGroup bool      // IntentText
}

// Button payload vocabulary. These strings are the entire control surface of
// the button interface; no prefix may be a prefix of another.
const (
	payloadCreateReminders = "create_reminders"
	payloadStoreReminder   = "store_reminder"
	payloadExit            = "exit"
	prefixSetReminder      = "set_reminder_"
	prefixViewReminder     = "view_reminder_"
)

// formatDatePayload and parseDatePayload are the single serialization routine
// for dates inside button payloads. The prompt builder produces payloads with
// the former and the normalizer parses them with the latter, so the two can
// never drift.
func formatDatePayload(d time.Time) string {
	return d.Format(model.DateLayout)
}

func parseDatePayload(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, s)
}

// Normalize maps a transport event to exactly one intent. The second return
// is false when the event should be dropped: group messages that do not
// mention the bot, and payloads outside the known vocabulary.
func Normalize(ev Event, mention string) (Intent, bool) {
	if ev.Payload != "" {
		return normalizePayload(ev.Payload)
	}

	text := strings.TrimSpace(ev.Text)
	if ev.IsGroup {
		if mention == "" || !strings.Contains(text, mention) {
			return Intent{}, false
		}
		text = strings.TrimSpace(strings.ReplaceAll(text, mention, ""))
	}

	switch text {
	case "/start":
		return Intent{Kind: IntentStart}, true
	case "/help":
		return Intent{Kind: IntentHelp}, true
	case "/set":
		return Intent{Kind: IntentSet}, true
	case "/view":
		return Intent{Kind: IntentView}, true
	}

	return Intent{Kind: IntentText, Text: text, IsGroup: ev.IsGroup}, true
}

func normalizePayload(payload string) (Intent, bool) {
	switch {
	case payload == payloadCreateReminders:
		return Intent{Kind: IntentCreateReminders}, true
	case payload == payloadStoreReminder:
		return Intent{Kind: IntentStoreReminder}, true
	case payload == payloadExit:
		return Intent{Kind: IntentExit}, true
	case strings.HasPrefix(payload, prefixSetReminder):
		date, err := parseDatePayload(strings.TrimPrefix(payload, prefixSetReminder))
		if err != nil {
			return Intent{}, false
		}
		return Intent{Kind: IntentDaySelected, Date: date}, true
	case strings.HasPrefix(payload, prefixViewReminder):
		date, err := parseDatePayload(strings.TrimPrefix(payload, prefixViewReminder))
		if err != nil {
			return Intent{}, false
		}
		return Intent{Kind: IntentViewDay, Date: date}, true
	}
	return Intent{}, false
}

// String names the intent kind for logs.
func (k IntentKind) String() string {
	switch k {
	case IntentStart:
		return "start"
	case IntentHelp:
		return "help"
	case IntentSet:
		return "set"
	case IntentView:
		return "view"
	case IntentCreateReminders:
		return "create_reminders"
	case IntentDaySelected:
		return "day_selected"
	case IntentViewDay:
		return "view_day"
	case IntentStoreReminder:
		return "store_reminder"
	case IntentExit:
		return "exit"
	case IntentText:
		return "text"
	default:
		return fmt.Sprintf("intent(%d)", int(k))
	}
}
