package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteExpired      = errors.New("invite expired")
	ErrAlreadyMember      = errors.New("already a member of the room")
)

// AlreadyMemberError reports which room the caller already belongs to.
// It matches ErrAlreadyMember with errors.Is.
type AlreadyMemberError struct {
	ChatRoomID string
}

func (e *AlreadyMemberError) Error() string {
	return fmt.Sprintf("already a member of room %s", e.ChatRoomID)
}

func (e *AlreadyMemberError) Is(target error) bool { return target == ErrAlreadyMember }

// Clock returns the current time. A nil Clock is the wall clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// loadRoom returns the room projection. It accepts a Tx as well as the
// root Store.
func loadRoom(ctx context.Context, st store.Store, roomID string) (domain.RoomWithRoles, error) {
	room, err := st.Rooms().GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RoomWithRoles{}, access.ErrNotFound
		}
		return domain.RoomWithRoles{}, err
	}
	roles, err := st.RoomRoles().ListRolesByRoom(ctx, roomID)
	if err != nil {
		return domain.RoomWithRoles{}, err
	}
	return domain.RoomWithRoles{ChatRoom: room, Roles: roles}, nil
}

// publish sends ev and only logs failures; the change it describes is
// already committed.
func publish(ctx context.Context, p events.Publisher, ev events.MembershipEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		slogx.FromContext(ctx).Warn("failed to publish membership event",
			slog.String("type", string(ev.Type)),
			slog.String("room_id", ev.RoomID),
			slog.String("user_id", ev.UserID),
			slog.Any("error", err),
		)
	}
}

func joinedMessage(name string) string { return fmt.Sprintf("User %s entered the chat.", name) }
func leftMessage(name string) string   { return fmt.Sprintf("User %s left the chat.", name) }
