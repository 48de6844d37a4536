package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

type RolesService struct {
	Store  store.Store
	Events events.Publisher
	Clock  Clock
}

// target loads a role row the caller can see: it must exist and the caller
// must be a member of the same room.
func (s *RolesService) target(ctx context.Context, id access.Identity, roleID string, allowed ...domain.Role) (domain.RoomRole, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return domain.RoomRole{}, err
	}

	role, err := s.Store.RoomRoles().GetRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RoomRole{}, access.ErrNotFound
		}
		return domain.RoomRole{}, err
	}

	err = access.Enforce(ctx, id, access.RoomRole(s.Store.RoomRoles(), role.ChatRoomID, allowed...))
	if err != nil {
		return domain.RoomRole{}, err
	}
	return role, nil
}

// GetRole returns a membership row of a room the caller belongs to.
func (s *RolesService) GetRole(ctx context.Context, id access.Identity, roleID string) (domain.RoomRole, error) {
	return s.target(ctx, id, roleID)
}

// UpdateRole changes a member's tier. Room admins only.
func (s *RolesService) UpdateRole(ctx context.Context, id access.Identity, roleID string, tier domain.Role) (domain.RoomRole, error) {
	role, err := s.target(ctx, id, roleID, domain.RoleAdmin)
	if err != nil {
		return domain.RoomRole{}, err
	}
	if !tier.Valid() {
		return domain.RoomRole{}, ErrInvalidRole
	}

	role.Role = tier
	role.UpdatedAt = s.Clock.now()
	if err := s.Store.RoomRoles().UpdateRoleTier(ctx, role.ID, role.Role, role.UpdatedAt); err != nil {
		return domain.RoomRole{}, err
	}

	slogx.FromContext(ctx).Info("room role changed",
		slog.String("role_id", role.ID),
		slog.String("room_id", role.ChatRoomID),
		slog.String("role", string(tier)),
		slog.String("by", id.UserID()),
	)
	return role, nil
}

// RemoveRole deletes a membership. The caller may remove their own role or,
// as an admin or moderator, anyone's in the same room. A "left the chat"
// announcement attributed to the caller is written in the same transaction.
func (s *RolesService) RemoveRole(ctx context.Context, id access.Identity, roleID string) error {
	l := slogx.FromContext(ctx)

	// 1. Resolve the target and the caller's own membership
	role, err := s.target(ctx, id, roleID)
	if err != nil {
		return err
	}
	if err := access.Enforce(ctx, id, access.SelfOrElevated(s.Store.RoomRoles(), role)); err != nil {
		return err
	}

	// 2. Name the removed member in the announcement
	removed, err := s.Store.Users().GetUserByID(ctx, role.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("room role references a missing user",
				slog.String("role_id", role.ID),
				slog.String("user_id", role.UserID),
			)
			return access.ErrNotFound
		}
		l.Error("failed to fetch removed member", slog.Any("error", err))
		return err
	}

	// 3. Delete and announce atomically
	now := s.Clock.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RoomRoles().DeleteRole(ctx, role.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return access.ErrNotFound
			}
			return err
		}
		return tx.Messages().CreateMessage(ctx, domain.Message{
			ID:          idx.NewAt(now).String(),
			ChatRoomID:  role.ChatRoomID,
			CreatedByID: id.UserID(),
			Type:        domain.MessageTypeSystem,
			Content:     leftMessage(removed.DisplayName()),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		if !errors.Is(err, access.ErrNotFound) {
			l.Error("failed to remove room role", slog.Any("error", err))
		}
		return err
	}

	publish(ctx, s.Events, events.MembershipEvent{
		Type:    events.MemberLeft,
		RoomID:  role.ChatRoomID,
		UserID:  role.UserID,
		ActorID: id.UserID(),
		Role:    string(role.Role),
		At:      now,
	})
	l.Info("room role removed",
		slog.String("role_id", role.ID),
		slog.String("room_id", role.ChatRoomID),
		slog.String("user_id", role.UserID),
		slog.String("by", id.UserID()),
	)
	return nil
}
