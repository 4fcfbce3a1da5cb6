package twilio

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/haleemairfan/ReminderBot/internal/bot"
)

func TestEventFromForm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		form    url.Values
		want    bot.Event
		wantErr bool
	}{
		{
			name: "free text",
			form: url.Values{"From": {"whatsapp:+6591234567"}, "Body": {"Buy milk"}},
			want: bot.Event{UserID: 6591234567, Text: "Buy milk"},
		},
		{
			name: "button tap",
			form: url.Values{"From": {"whatsapp:+6591234567"}, "ButtonPayload": {"set_reminder_2024-03-06"}},
			want: bot.Event{UserID: 6591234567, Payload: "set_reminder_2024-03-06"},
		},
		{
			name: "group message",
			form: url.Values{"From": {"whatsapp:+6591234567"}, "Body": {"hi"}, "ChatType": {"group"}},
			want: bot.Event{UserID: 6591234567, Text: "hi", IsGroup: true},
		},
		{
			name:    "bad sender",
			form:    url.Values{"From": {"whatsapp:bogus"}, "Body": {"hi"}},
			wantErr: true,
		},
		{
			name:    "empty message",
			form:    url.Values{"From": {"whatsapp:+6591234567"}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/twilio/webhook", strings.NewReader(tc.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if err := req.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}

			got, err := eventFromForm(req)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRenderReply(t *testing.T) {
	t.Parallel()

	plain := bot.Reply{Text: "Type your tasks into this bot"}
	if got := renderReply(plain); got != plain.Text {
		t.Fatalf("plain reply must render unchanged, got %q", got)
	}

	menu := bot.Reply{
		Text: "Hello! Let's get you started!",
		Buttons: [][]bot.Button{
			{{Label: "Create my reminders!", Payload: "create_reminders"}},
			{{Label: "Exit", Payload: "exit"}},
		},
	}
	got := renderReply(menu)
	for _, want := range []string{"Hello! Let's get you started!", "• Create my reminders!", "• Exit"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered menu missing %q: %q", want, got)
		}
	}
}

func TestNormalizeWhatsAppAddress(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                      "",
		"whatsapp:+6591234567":  "whatsapp:+6591234567",
		"+6591234567":           "whatsapp:+6591234567",
		"6591234567":            "whatsapp:+6591234567",
		"  +6591234567  ":       "whatsapp:+6591234567",
	}

	for input, want := range cases {
		if got := normalizeWhatsAppAddress(input); got != want {
			t.Fatalf("normalizeWhatsAppAddress(%q) = %q, want %q", input, got, want)
		}
	}
}
