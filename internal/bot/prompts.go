package bot

import "time"

// Button is one tappable menu entry: a human-readable label and the machine
// payload the transport echoes back when tapped.
type Button struct {
	Label   string
	Payload string
}

// Reply is one outbound message, optionally carrying a button menu rendered
// as rows by the transport.
type Reply struct {
	Text    string
	Buttons [][]Button
}

const (
	dayLabelLayout = "Monday, 02 January"
	fullDateLayout = "Monday, 02 January 2006"
)

// daysUntilWeekEnd returns how many days remain after "now" before the ISO
// week ends, with Monday=0 .. Sunday=6. The day list therefore never wraps
// into the next week.
func daysUntilWeekEnd(now time.Time) int {
	return 6 - (int(now.Weekday())+6)%7
}

// dayPicker builds the day menu from today through the Sunday ending the
// current week, one button per row, with a trailing Exit row. Deterministic
// for a given now.
func dayPicker(now time.Time, prefix string) [][]Button {
	today := truncateToDay(now)
	remaining := daysUntilWeekEnd(now)

	buttons := make([][]Button, 0, remaining+2)
	for i := 0; i <= remaining; i++ {
		day := today.AddDate(0, 0, i)
		buttons = append(buttons, []Button{{
			Label:   day.Format(dayLabelLayout),
			Payload: prefix + formatDatePayload(day),
		}})
	}
	buttons = append(buttons, []Button{{Label: "Exit", Payload: payloadExit}})
	return buttons
}

// createDayPicker and viewDayPicker share the day list and differ only in the
// payload prefix, so a tapped day routes to the right flow.
func createDayPicker(now time.Time) [][]Button {
	return dayPicker(now, prefixSetReminder)
}

func viewDayPicker(now time.Time) [][]Button {
	return dayPicker(now, prefixViewReminder)
}

// entryMenu is the single "Create my reminders!" button shown by /start and /set.
func entryMenu() [][]Button {
	return [][]Button{
		{{Label: "Create my reminders!", Payload: payloadCreateReminders}},
	}
}

// dayPrompt is shown after a day is picked and again after each stored
// reminder for that day.
func dayPrompt(selected time.Time) Reply {
	return Reply{
		Text: "Please enter your reminders for " + selected.Format(fullDateLayout) + ":",
		Buttons: [][]Button{
			{{Label: "Enter your reminder!", Payload: payloadStoreReminder}},
			{{Label: "I have no more reminders!", Payload: payloadCreateReminders}},
		},
	}
}

func formatFullDate(d time.Time) string {
	return d.Format(fullDateLayout)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
