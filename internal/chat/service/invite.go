package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
	"github.com/google/uuid"
)

type InviteService struct {
	Store  store.Store
	Events events.Publisher
	Clock  Clock

	// Validity is how long a new invite lives.
	Validity time.Duration
	// ReuseWindow is the remaining validity an existing invite needs to be
	// handed out again instead of minting a new one.
	ReuseWindow time.Duration
}

// CreateInvite returns an invite for roomID, reusing one that stays valid
// for longer than the reuse window. Admins and moderators only.
//
// The lookup and insert are not locked, so concurrent callers may each mint
// an invite. Extra valid invites are harmless.
func (s *InviteService) CreateInvite(ctx context.Context, id access.Identity, roomID string) (domain.RoomInvite, error) {
	l := slogx.FromContext(ctx)

	// 1. Caller must be an elevated member
	err := access.Enforce(ctx, id,
		access.Authenticated,
		access.RoomRole(s.Store.RoomRoles(), roomID, domain.ElevatedRoles...),
	)
	if err != nil {
		return domain.RoomInvite{}, err
	}

	// 2. Reuse an invite that outlives the threshold
	now := s.Clock.now()
	existing, err := s.Store.Invites().FindReusableInvite(ctx, roomID, now.Add(s.ReuseWindow))
	if err == nil {
		l.Debug("reusing room invite",
			slog.String("invite_id", existing.ID),
			slog.String("room_id", roomID),
		)
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		l.Error("failed to look up reusable invite", slog.Any("error", err))
		return domain.RoomInvite{}, err
	}

	// 3. Mint a new one
	invite := domain.RoomInvite{
		ID:          uuid.NewString(),
		ChatRoomID:  roomID,
		CreatedByID: id.UserID(),
		ExpiresAt:   now.Add(s.Validity),
		CreatedAt:   now,
	}
	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		l.Error("failed to create invite",
			slog.String("room_id", roomID),
			slog.Any("error", err),
		)
		return domain.RoomInvite{}, err
	}

	l.Info("room invite created",
		slog.String("invite_id", invite.ID),
		slog.String("room_id", roomID),
		slog.Time("expires_at", invite.ExpiresAt),
	)
	return invite, nil
}

// RedeemInvite adds the caller to the invite's room as a plain user and
// announces the join. The role and the announcement are written in one
// transaction. Invites are not consumed.
func (s *InviteService) RedeemInvite(ctx context.Context, id access.Identity, inviteID string) (domain.RoomWithRoles, error) {
	l := slogx.FromContext(ctx)

	// 1. Caller must be signed in
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return domain.RoomWithRoles{}, err
	}
	if _, err := uuid.Parse(inviteID); err != nil {
		return domain.RoomWithRoles{}, ErrInviteNotFound
	}

	now := s.Clock.now()
	user := *id.User
	var (
		room   domain.RoomWithRoles
		joined domain.RoomRole
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Look up the invite
		invite, err := tx.Invites().GetInviteByID(ctx, inviteID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteNotFound
			}
			return err
		}

		// 3. Expired invites are rejected for good
		if invite.Expired(now) {
			return ErrInviteExpired
		}

		// 4. Friendly check for existing membership
		_, err = tx.RoomRoles().GetRoleForUser(ctx, invite.ChatRoomID, user.ID)
		if err == nil {
			return &AlreadyMemberError{ChatRoomID: invite.ChatRoomID}
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// 5. Insert the role; the unique constraint is the real guard
		joined = domain.RoomRole{
			ID:         idx.NewAt(now).String(),
			ChatRoomID: invite.ChatRoomID,
			UserID:     user.ID,
			Role:       domain.RoleUser,
			InviteID:   invite.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.RoomRoles().CreateRole(ctx, joined); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return &AlreadyMemberError{ChatRoomID: invite.ChatRoomID}
			}
			return err
		}

		// 6. Announce the join
		err = tx.Messages().CreateMessage(ctx, domain.Message{
			ID:          idx.NewAt(now).String(),
			ChatRoomID:  invite.ChatRoomID,
			CreatedByID: user.ID,
			Type:        domain.MessageTypeSystem,
			Content:     joinedMessage(user.DisplayName()),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		room, err = loadRoom(ctx, tx, invite.ChatRoomID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInviteNotFound), errors.Is(err, ErrInviteExpired), errors.Is(err, ErrAlreadyMember):
			l.Info("invite redemption refused",
				slog.String("invite_id", inviteID),
				slog.String("reason", err.Error()),
			)
		default:
			l.Error("failed to redeem invite",
				slog.String("invite_id", inviteID),
				slog.Any("error", err),
			)
		}
		return domain.RoomWithRoles{}, err
	}

	publish(ctx, s.Events, events.MembershipEvent{
		Type:    events.MemberJoined,
		RoomID:  joined.ChatRoomID,
		UserID:  user.ID,
		ActorID: user.ID,
		Role:    string(joined.Role),
		At:      now,
	})
	l.Info("invite redeemed",
		slog.String("invite_id", inviteID),
		slog.String("room_id", joined.ChatRoomID),
		slog.String("user_id", user.ID),
	)
	return room, nil
}
