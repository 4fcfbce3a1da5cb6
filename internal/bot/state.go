package bot

import (
	"sync"
	"time"
)

// Phase is the conversation step a user is currently in.
type Phase int

const (
	// PhaseIdle means no reminder flow is in progress.
	PhaseIdle Phase = iota
	// PhaseAwaitingDay means the day picker has been shown.
	PhaseAwaitingDay
	// PhaseAwaitingText means the next free-text message is the reminder content.
	PhaseAwaitingText
	// PhaseAwaitingTime means the next free-text message is the reminder time.
	PhaseAwaitingTime
)

// State is one user's in-flight conversation scratch state. The phase
// determines which fields may be set: SelectedDate from PhaseAwaitingDay
// onward once a day is picked, DraftContent only in PhaseAwaitingTime.
// The zero value is a fresh Idle state.
type State struct {
	Phase        Phase
	SelectedDate time.Time
	DraftContent string
}

// HasDate reports whether a day has been selected.
func (s State) HasDate() bool {
	return !s.SelectedDate.IsZero()
}

// conversationStore keeps per-user conversation state in memory. It is not
// persisted; a restart drops all in-flight flows and users start over.
type conversationStore struct {
	mu     sync.RWMutex
	states map[int64]State
}

func newConversationStore() *conversationStore {
	return &conversationStore{
		states: make(map[int64]State),
	}
}

// Get returns the user's state, or a fresh Idle state when absent.
func (c *conversationStore) Get(userID int64) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states[userID]
}

func (c *conversationStore) Set(userID int64, st State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[userID] = st
}

func (c *conversationStore) Clear(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, userID)
}
