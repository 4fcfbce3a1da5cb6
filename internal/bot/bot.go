// Package bot implements the reminder dialogue: normalizing inbound chat
// events into intents, walking each user through pick a day → enter text →
// enter a time, and persisting completed reminders through the store gateway.
package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/haleemairfan/ReminderBot/internal/config"
	"github.com/haleemairfan/ReminderBot/internal/gateway"
	"github.com/haleemairfan/ReminderBot/internal/model"
	"github.com/robfig/cron/v3"
)

// Gateway is the persistence surface the bot stores to and queries from.
type Gateway interface {
	CreateReminder(ctx context.Context, userID int64, content, date, timeStr string) (string, error)
	QueryReminders(ctx context.Context, userID int64, date string) ([]model.ReminderEntry, error)
	DueReminders(ctx context.Context, date string) ([]model.ReminderEntry, error)
}

// Sender delivers one outbound reply to a user over the chat transport.
type Sender interface {
	Send(ctx context.Context, userID int64, reply Reply) error
}

// Summarizer condenses a delivery digest. Implementations may fall back to
// returning the input unchanged.
type Summarizer interface {
	SummarizeDigest(ctx context.Context, content string) (string, error)
}

// Bot coordinates the dialogue state machine, the delivery scheduler, and the
// store gateway.
type Bot struct {
	cfg        *config.Config
	gateway    Gateway
	sender     Sender
	summarizer Summarizer
	cron       *cron.Cron
	state      *conversationStore
	events     chan Event
	done       chan struct{}
	logger     *log.Logger
	now        func() time.Time
}

// New creates a fully configured Bot instance.
func New(cfg *config.Config, gw Gateway, sender Sender, summarizer Summarizer, logger *log.Logger) *Bot {
	c := cron.New(cron.WithLocation(cfg.LocalTimezone))
	queueSize := cfg.EventQueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	b := &Bot{
		cfg:        cfg,
		gateway:    gw,
		sender:     sender,
		summarizer: summarizer,
		cron:       c,
		state:      newConversationStore(),
		events:     make(chan Event, queueSize),
		done:       make(chan struct{}),
		logger:     logger,
		now: func() time.Time {
			return time.Now().In(cfg.LocalTimezone)
		},
	}
	return b
}

// Start launches the dispatcher loop. Events are handled strictly one at a
// time, so no two events for the same user ever interleave.
func (b *Bot) Start() {
	go func() {
		defer close(b.done)
		for ev := range b.events {
			b.dispatch(ev)
		}
	}()
}

// Stop drains the dispatcher and waits for in-flight handling to finish.
func (b *Bot) Stop() {
	close(b.events)
	<-b.done
}

// Enqueue hands an inbound event to the dispatcher. It reports false when the
// queue is full, in which case the event is dropped and logged.
func (b *Bot) Enqueue(ev Event) bool {
	select {
	case b.events <- ev:
		return true
	default:
		b.logger.Printf("dispatch: queue full, dropping event from user %d", ev.UserID)
		return false
	}
}

// StartScheduler registers the 8AM delivery job and starts the scheduler loop.
func (b *Bot) StartScheduler() error {
	_, err := b.cron.AddFunc("0 8 * * *", func() {
		b.deliverDueReminders(context.Background())
	})
	if err != nil {
		return err
	}
	b.cron.Start()
	return nil
}

// StopScheduler stops the cron scheduler gracefully.
func (b *Bot) StopScheduler() {
	ctx := b.cron.Stop()
	<-ctx.Done()
}

// dispatch handles one event, recovering from panics so a malformed event can
// never take down the loop.
func (b *Bot) dispatch(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("dispatch: panic handling event from user %d: %v", ev.UserID, r)
			b.state.Clear(ev.UserID)
			b.reply(ev.UserID, Reply{Text: "Sorry, something went wrong. Please try again."})
		}
	}()
	b.handleEvent(context.Background(), ev)
}

func (b *Bot) handleEvent(ctx context.Context, ev Event) {
	intent, ok := Normalize(ev, b.cfg.BotMention)
	if !ok {
		if ev.Payload != "" {
			b.logger.Printf("dispatch: unknown payload %q from user %d", ev.Payload, ev.UserID)
		}
		return
	}

	st := b.state.Get(ev.UserID)

	switch intent.Kind {
	case IntentStart:
		b.reply(ev.UserID, Reply{Text: "Hello! Let's get you started!", Buttons: entryMenu()})

	case IntentHelp:
		b.reply(ev.UserID, Reply{Text: "Type your tasks into this bot"})

	case IntentSet:
		b.reply(ev.UserID, Reply{Text: "Let's set some reminders!", Buttons: entryMenu()})

	case IntentView:
		// Never touches conversation state; viewing is allowed mid-flow.
		b.reply(ev.UserID, Reply{Text: "Let's view your reminders", Buttons: viewDayPicker(b.now())})

	case IntentCreateReminders:
		b.state.Set(ev.UserID, State{Phase: PhaseAwaitingDay})
		b.reply(ev.UserID, Reply{Text: "Let's create your reminders", Buttons: createDayPicker(b.now())})

	case IntentDaySelected:
		b.state.Set(ev.UserID, State{Phase: PhaseAwaitingDay, SelectedDate: intent.Date})
		b.reply(ev.UserID, dayPrompt(intent.Date))

	case IntentStoreReminder:
		if !st.HasDate() {
			b.reply(ev.UserID, Reply{Text: "Please pick a day first.", Buttons: createDayPicker(b.now())})
			return
		}
		st.Phase = PhaseAwaitingText
		b.state.Set(ev.UserID, st)
		b.reply(ev.UserID, Reply{Text: "Please enter your reminder"})

	case IntentExit:
		b.state.Clear(ev.UserID)
		b.reply(ev.UserID, Reply{Text: "Okay! See ya next time!"})

	case IntentViewDay:
		b.viewReminders(ctx, ev.UserID, intent.Date)

	case IntentText:
		b.handleText(ctx, ev.UserID, st, intent)
	}
}

func (b *Bot) handleText(ctx context.Context, userID int64, st State, intent Intent) {
	// Group messages never feed a draft; they only get the canned pointer.
	if intent.IsGroup {
		b.reply(userID, Reply{Text: helpPointer})
		return
	}

	switch st.Phase {
	case PhaseAwaitingText:
		st.DraftContent = intent.Text
		st.Phase = PhaseAwaitingTime
		b.state.Set(userID, st)
		b.reply(userID, Reply{Text: "Please enter the time for your reminder (HH:MM)"})

	case PhaseAwaitingTime:
		b.storeReminderTime(ctx, userID, st, intent.Text)

	default:
		// Free text outside an awaiting phase never mutates state.
		b.reply(userID, Reply{Text: helpPointer})
	}
}

const helpPointer = "Please refer to /help if you require any help using this bot"

// storeReminderTime completes the draft. A malformed time is recoverable: the
// user stays in the same phase and retries. A store failure is surfaced with
// its status code, but the draft is still cleared and the day prompt
// re-offered for the same date.
func (b *Bot) storeReminderTime(ctx context.Context, userID int64, st State, text string) {
	parsed, err := time.Parse(model.TimeLayout, strings.TrimSpace(text))
	if err != nil {
		b.reply(userID, Reply{Text: "Invalid time format. Please enter the time in HH:MM format."})
		return
	}

	date := formatDatePayload(st.SelectedDate)
	timeStr := parsed.Format(model.TimeLayout)

	_, err = b.gateway.CreateReminder(ctx, userID, st.DraftContent, date, timeStr)
	switch {
	case err == nil:
		b.reply(userID, Reply{Text: fmt.Sprintf("Reminder saved: %s on %s at %s", st.DraftContent, date, timeStr)})
	default:
		if se, ok := err.(*gateway.StatusError); ok {
			b.reply(userID, Reply{Text: fmt.Sprintf("Failed to save reminder: %d", se.Code)})
		} else {
			b.logger.Printf("store reminder for user %d: %v", userID, err)
			b.reply(userID, Reply{Text: "Failed to save reminder. Please try again later."})
		}
	}

	selected := st.SelectedDate
	b.state.Set(userID, State{Phase: PhaseAwaitingDay, SelectedDate: selected})
	b.reply(userID, dayPrompt(selected))
}

// viewReminders answers a view-picker tap. It reads only from the gateway and
// leaves conversation state untouched.
func (b *Bot) viewReminders(ctx context.Context, userID int64, date time.Time) {
	entries, err := b.gateway.QueryReminders(ctx, userID, formatDatePayload(date))
	if err != nil {
		if se, ok := err.(*gateway.StatusError); ok {
			b.reply(userID, Reply{Text: fmt.Sprintf("Failed to retrieve reminders. Status code: %d. Response: %s", se.Code, se.Body)})
		} else {
			b.logger.Printf("view reminders for user %d: %v", userID, err)
			b.reply(userID, Reply{Text: fmt.Sprintf("An error occurred: %v", err)})
		}
		return
	}

	if len(entries) == 0 {
		b.reply(userID, Reply{Text: fmt.Sprintf("No reminders found for %s.", formatFullDate(date))})
		return
	}

	var sb strings.Builder
	sb.WriteString("Reminders for " + formatFullDate(date) + ":")
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("\n- %s: %s", entry.Time, entry.Content))
	}
	b.reply(userID, Reply{Text: sb.String()})
}

// deliverDueReminders pushes each user their reminders for today, one digest
// message per user, optionally condensed by the summarizer.
func (b *Bot) deliverDueReminders(ctx context.Context) {
	today := formatDatePayload(truncateToDay(b.now()))
	entries, err := b.gateway.DueReminders(ctx, today)
	if err != nil {
		b.logger.Printf("scheduler: fetch due reminders: %v", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	for userID, digest := range buildDigests(entries) {
		message := digest
		if b.summarizer != nil {
			if summary, err := b.summarizer.SummarizeDigest(ctx, digest); err == nil && summary != "" {
				message = summary
			} else if err != nil {
				b.logger.Printf("scheduler: summarize digest: %v", err)
			}
		}
		if err := b.sender.Send(ctx, userID, Reply{Text: message}); err != nil {
			b.logger.Printf("scheduler: send digest to user %d: %v", userID, err)
		}
	}
}

// buildDigests groups due reminders per user, preserving the gateway's
// time-ascending order.
func buildDigests(entries []model.ReminderEntry) map[int64]string {
	digests := make(map[int64]string)
	for _, entry := range entries {
		line := fmt.Sprintf("- %s: %s", entry.Time, entry.Content)
		if existing, ok := digests[entry.UserID]; ok {
			digests[entry.UserID] = existing + "\n" + line
		} else {
			digests[entry.UserID] = "Your reminders for today:\n" + line
		}
	}
	return digests
}

func (b *Bot) reply(userID int64, reply Reply) {
	if err := b.sender.Send(context.Background(), userID, reply); err != nil {
		b.logger.Printf("send reply to user %d: %v", userID, err)
	}
}
