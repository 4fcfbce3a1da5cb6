// Package twilio adapts the abstract chat transport to Twilio WhatsApp
// messaging: outbound replies with rendered button menus, and inbound webhook
// form posts mapped to bot events.
package twilio

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/haleemairfan/ReminderBot/internal/bot"
	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client wraps Twilio messaging operations required by the bot.
type Client struct {
	client       *twilio.RestClient
	fromWhatsApp string
	logger       *log.Logger
}

// New creates a Twilio client bound to the configured WhatsApp sender number.
func New(accountSID, authToken, fromWhatsApp string, logger *log.Logger) *Client {
	return &Client{
		client:       twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken}),
		fromWhatsApp: fromWhatsApp,
		logger:       logger,
	}
}

// Send delivers one reply, rendering any button menu as labelled rows.
// Quick-reply taps come back through the webhook's ButtonPayload field.
func (c *Client) Send(ctx context.Context, userID int64, reply bot.Reply) error {
	if c.client == nil {
		return fmt.Errorf("twilio client not initialised")
	}

	sender := normalizeWhatsAppAddress(c.fromWhatsApp)
	if sender == "" {
		return fmt.Errorf("twilio sender WhatsApp number is not configured")
	}
	recipient := normalizeWhatsAppAddress(strconv.FormatInt(userID, 10))

	params := &openapi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(sender)
	params.SetBody(renderReply(reply))

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send message error: %w", err)
	}
	if resp.Sid != nil {
		c.logger.Printf("twilio: sent message %s to user %d", *resp.Sid, userID)
	}
	return nil
}

// WebhookHandler parses inbound Twilio form posts into bot events, hands them
// to enqueue, and acks with empty TwiML. Replies go out asynchronously over
// the REST API once the dispatcher has processed the event.
func (c *Client) WebhookHandler(enqueue func(bot.Event) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			c.logger.Printf("webhook: parse error: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		ev, err := eventFromForm(r)
		if err != nil {
			c.logger.Printf("webhook: %v", err)
			writeEmptyTwiML(w)
			return
		}

		enqueue(ev)
		writeEmptyTwiML(w)
	}
}

func eventFromForm(r *http.Request) (bot.Event, error) {
	from := r.FormValue("From")
	userID, err := strconv.ParseInt(sanitizeWhatsAppNumber(from), 10, 64)
	if err != nil {
		return bot.Event{}, fmt.Errorf("unparseable From %q", from)
	}

	payload := r.FormValue("ButtonPayload")
	body := strings.TrimSpace(r.FormValue("Body"))
	if payload == "" && body == "" {
		return bot.Event{}, fmt.Errorf("empty message from user %d", userID)
	}

	return bot.Event{
		UserID:  userID,
		Text:    body,
		Payload: payload,
		IsGroup: r.FormValue("ChatType") == "group",
	}, nil
}

// renderReply appends the button labels under the text so users without
// interactive message support still see their options.
func renderReply(reply bot.Reply) string {
	if len(reply.Buttons) == 0 {
		return reply.Text
	}

	var sb strings.Builder
	sb.WriteString(reply.Text)
	for _, row := range reply.Buttons {
		for _, button := range row {
			sb.WriteString("\n• " + button.Label)
		}
	}
	return sb.String()
}

func writeEmptyTwiML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`)
}

func sanitizeWhatsAppNumber(from string) string {
	// Twilio prepends whatsapp: to the number.
	trimmed := strings.TrimPrefix(strings.TrimSpace(from), "whatsapp:")
	return strings.TrimPrefix(trimmed, "+")
}

func normalizeWhatsAppAddress(number string) string {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "whatsapp:") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "+") {
		return "whatsapp:" + trimmed
	}
	return "whatsapp:+" + trimmed
}
