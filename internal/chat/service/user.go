package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

type UserService struct {
	Store store.Store
	Clock Clock
}

// Me returns the caller's account as resolved for this request.
func (s *UserService) Me(ctx context.Context, id access.Identity) (domain.User, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return domain.User{}, err
	}
	return *id.User, nil
}

// GetUser fetches any user by id.
func (s *UserService) GetUser(ctx context.Context, id access.Identity, userID string) (domain.User, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return domain.User{}, err
	}
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, access.ErrNotFound
	}
	return u, err
}

// SetUserFlags changes is_active and/or is_superuser. Nil leaves a flag
// unchanged. Superuser only.
func (s *UserService) SetUserFlags(ctx context.Context, id access.Identity, userID string, isActive, isSuperuser *bool) (domain.User, error) {
	if err := access.Enforce(ctx, id, access.Authenticated, access.Superuser); err != nil {
		return domain.User{}, err
	}

	u, err := s.GetUser(ctx, id, userID)
	if err != nil {
		return domain.User{}, err
	}
	if isActive != nil {
		u.IsActive = *isActive
	}
	if isSuperuser != nil {
		u.IsSuperuser = *isSuperuser
	}
	u.UpdatedAt = s.Clock.now()

	if err := s.Store.Users().UpdateUserFlags(ctx, u.ID, u.IsActive, u.IsSuperuser, u.UpdatedAt); err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user flags updated",
		slog.String("user_id", u.ID),
		slog.String("by", id.UserID()),
		slog.Bool("is_active", u.IsActive),
		slog.Bool("is_superuser", u.IsSuperuser),
	)
	return u, nil
}
