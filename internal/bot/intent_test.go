package bot

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeCommandsAndPayloads(t *testing.T) {
	t.Parallel()

	wednesday := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ev   Event
		want Intent
		ok   bool
	}{
		{"start", Event{Text: "/start"}, Intent{Kind: IntentStart}, true},
		{"help", Event{Text: "/help"}, Intent{Kind: IntentHelp}, true},
		{"set", Event{Text: "/set"}, Intent{Kind: IntentSet}, true},
		{"view", Event{Text: "/view"}, Intent{Kind: IntentView}, true},
		{"padded command", Event{Text: "  /view  "}, Intent{Kind: IntentView}, true},
		{"free text", Event{Text: "buy milk"}, Intent{Kind: IntentText, Text: "buy milk"}, true},
		{"create payload", Event{Payload: "create_reminders"}, Intent{Kind: IntentCreateReminders}, true},
		{"store payload", Event{Payload: "store_reminder"}, Intent{Kind: IntentStoreReminder}, true},
		{"exit payload", Event{Payload: "exit"}, Intent{Kind: IntentExit}, true},
		{"set day payload", Event{Payload: "set_reminder_2024-03-06"}, Intent{Kind: IntentDaySelected, Date: wednesday}, true},
		{"view day payload", Event{Payload: "view_reminder_2024-03-06"}, Intent{Kind: IntentViewDay, Date: wednesday}, true},
		{"unknown payload", Event{Payload: "delete_reminder_2024-03-06"}, Intent{}, false},
		{"garbled date payload", Event{Payload: "set_reminder_tomorrow"}, Intent{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(tc.ev, "@remindersUsingABot")
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if got.Kind != tc.want.Kind || got.Text != tc.want.Text || !got.Date.Equal(tc.want.Date) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestNormalizeGroupMention(t *testing.T) {
	t.Parallel()

	const mention = "@remindersUsingABot"

	if _, ok := Normalize(Event{Text: "remind me", IsGroup: true}, mention); ok {
		t.Fatalf("group message without mention must be dropped")
	}

	got, ok := Normalize(Event{Text: "hey " + mention + " remind me", IsGroup: true}, mention)
	if !ok {
		t.Fatalf("mentioned group message must pass")
	}
	if got.Kind != IntentText || !got.IsGroup {
		t.Fatalf("expected group text intent, got %+v", got)
	}
	if strings.Contains(got.Text, mention) {
		t.Fatalf("mention must be stripped, got %q", got.Text)
	}
	if got.Text != "hey  remind me" && got.Text != "hey remind me" {
		t.Fatalf("unexpected stripped text %q", got.Text)
	}
}

// TestPayloadPrefixesAreUnambiguous guards the control surface: no payload
// word may be a prefix of another, or prefix routing would misfire.
func TestPayloadPrefixesAreUnambiguous(t *testing.T) {
	t.Parallel()

	vocabulary := []string{
		payloadCreateReminders,
		payloadStoreReminder,
		payloadExit,
		prefixSetReminder,
		prefixViewReminder,
	}

	for i, a := range vocabulary {
		for j, b := range vocabulary {
			if i != j && strings.HasPrefix(a, b) {
				t.Fatalf("%q is a prefix of %q", b, a)
			}
		}
	}
}
