package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

type RoomService struct {
	Store  store.Store
	Events events.Publisher
	Clock  Clock
}

// ListRooms returns every room the caller holds a role in.
func (s *RoomService) ListRooms(ctx context.Context, id access.Identity) ([]domain.RoomWithRoles, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return nil, err
	}

	rooms, err := s.Store.Rooms().ListRoomsForUser(ctx, id.UserID())
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoomWithRoles, 0, len(rooms))
	for _, room := range rooms {
		roles, err := s.Store.RoomRoles().ListRolesByRoom(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.RoomWithRoles{ChatRoom: room, Roles: roles})
	}
	return out, nil
}

// CreateRoom creates a room with the caller as its admin.
func (s *RoomService) CreateRoom(ctx context.Context, id access.Identity, name string) (domain.RoomWithRoles, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return domain.RoomWithRoles{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.RoomWithRoles{}, ErrInvalidInput
	}

	now := s.Clock.now()
	room := domain.ChatRoom{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		CreatedByID: id.UserID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	admin := domain.RoomRole{
		ID:         idx.NewAt(now).String(),
		ChatRoomID: room.ID,
		UserID:     id.UserID(),
		Role:       domain.RoleAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Rooms().CreateRoom(ctx, room); err != nil {
			return err
		}
		return tx.RoomRoles().CreateRole(ctx, admin)
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create room", slog.Any("error", err))
		return domain.RoomWithRoles{}, err
	}

	publish(ctx, s.Events, events.MembershipEvent{
		Type:    events.MemberJoined,
		RoomID:  room.ID,
		UserID:  admin.UserID,
		ActorID: admin.UserID,
		Role:    string(admin.Role),
		At:      now,
	})
	return domain.RoomWithRoles{ChatRoom: room, Roles: []domain.RoomRole{admin}}, nil
}

// GetRoom returns a room the caller belongs to.
func (s *RoomService) GetRoom(ctx context.Context, id access.Identity, roomID string) (domain.RoomWithRoles, error) {
	err := access.Enforce(ctx, id,
		access.Authenticated,
		access.RoomRole(s.Store.RoomRoles(), roomID),
	)
	if err != nil {
		return domain.RoomWithRoles{}, err
	}
	return loadRoom(ctx, s.Store, roomID)
}

// RenameRoom is open to admins and moderators of the room.
func (s *RoomService) RenameRoom(ctx context.Context, id access.Identity, roomID, name string) (domain.RoomWithRoles, error) {
	err := access.Enforce(ctx, id,
		access.Authenticated,
		access.RoomRole(s.Store.RoomRoles(), roomID, domain.ElevatedRoles...),
	)
	if err != nil {
		return domain.RoomWithRoles{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.RoomWithRoles{}, ErrInvalidInput
	}
	if err := s.Store.Rooms().RenameRoom(ctx, roomID, name, s.Clock.now()); err != nil {
		return domain.RoomWithRoles{}, err
	}
	return loadRoom(ctx, s.Store, roomID)
}

// DeleteRoom removes the room with its roles, invites and messages. Admin only.
func (s *RoomService) DeleteRoom(ctx context.Context, id access.Identity, roomID string) error {
	err := access.Enforce(ctx, id,
		access.Authenticated,
		access.RoomRole(s.Store.RoomRoles(), roomID, domain.RoleAdmin),
	)
	if err != nil {
		return err
	}

	if err := s.Store.Rooms().DeleteRoom(ctx, roomID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("room deleted",
		slog.String("room_id", roomID),
		slog.String("by", id.UserID()),
	)
	return nil
}
