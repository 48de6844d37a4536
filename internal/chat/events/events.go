// Package events publishes room membership changes to downstream consumers.
package events

import (
	"context"
	"sync"
	"time"
)

type Type string

const (
	MemberJoined Type = "member.joined"
	MemberLeft   Type = "member.left"
)

// MembershipEvent records a user entering or leaving a room. ActorID differs
// from UserID when a member is removed by someone else.
type MembershipEvent struct {
	Type    Type      `json:"type"`
	RoomID  string    `json:"room_id"`
	UserID  string    `json:"user_id"`
	ActorID string    `json:"actor_id"`
	Role    string    `json:"role,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher delivers membership events. Callers publish only after the
// change is committed and treat failures as non fatal.
type Publisher interface {
	Publish(ctx context.Context, ev MembershipEvent) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, MembershipEvent) error { return nil }
func (Nop) Close() error                                   { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []MembershipEvent
}

func (r *Recorder) Publish(_ context.Context, ev MembershipEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []MembershipEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]MembershipEvent, len(r.events))
	copy(out, r.events)
	return out
}
