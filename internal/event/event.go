package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the team service. Any transport (polling, push,
// webhook) can relay them; the core only guarantees emission.
const (
	TypeTeamChanged       = "team_changed"
	TypeMembershipChanged = "membership_changed"
	TypeJoinRequest       = "join_request"
	TypeVoteCast          = "vote_cast"
	TypeVotingStarted     = "voting_started"
	TypeVotingResolved    = "voting_resolved"
	TypeTeamDisbanded     = "team_disbanded"
)

// Event is a single change notification.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	TeamID    uint      `json:"team_id,omitempty"`
	ProfileID uint      `json:"profile_id,omitempty"`
	RoundID   uint      `json:"round_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType string, teamID, profileID uint, detail string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TeamID:    teamID,
		ProfileID: profileID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
}

// Emitter is what the service layer depends on; mutating operations emit
// exactly one event per observable state change.
type Emitter interface {
	Emit(e Event)
}

// Bus is an in-process fan-out of events to subscribers. Publish never
// blocks; a subscriber that falls behind loses events rather than stalling
// the mutating request.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of future events and a cancel function.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 64)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every live subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
