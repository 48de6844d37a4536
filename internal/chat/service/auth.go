package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/cryptox"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

type AuthService struct {
	Store     store.Store
	Tokens    jwtx.Issuer
	AccessTTL time.Duration
	Clock     Clock
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active, non-superuser account and signs it in.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (domain.User, jwtx.Token, error) {
	l := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Normalise and sanity check
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, jwtx.Token{}, ErrInvalidInput
	}

	// 2. Hash password
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}

	// 3. Store the user; the unique email constraint settles races
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("registration with taken email", slog.String("email", email))
			return domain.User{}, jwtx.Token{}, ErrEmailTaken
		}
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}

	// 4. Issue the first access token
	tok, err := s.Tokens.Issue(user.ID, now, s.AccessTTL)
	if err != nil {
		l.Error("failed to issue access token", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, tok, nil
}

// Login checks credentials. Unknown emails, wrong passwords and inactive
// accounts all return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, jwtx.Token, error) {
	l := slogx.FromContext(ctx)
	now := s.Clock.now()

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Debug("login for unknown email")
			return domain.User{}, jwtx.Token{}, ErrInvalidCredentials
		}
		l.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
		return domain.User{}, jwtx.Token{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		l.Info("login for inactive user", slog.String("user_id", user.ID))
		return domain.User{}, jwtx.Token{}, ErrInvalidCredentials
	}

	tok, err := s.Tokens.Issue(user.ID, now, s.AccessTTL)
	if err != nil {
		l.Error("failed to issue access token", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}
	return user, tok, nil
}

// IssueToken mints a fresh access token for the caller.
func (s *AuthService) IssueToken(ctx context.Context, id access.Identity) (jwtx.Token, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return jwtx.Token{}, err
	}
	return s.Tokens.Issue(id.UserID(), s.Clock.now(), s.AccessTTL)
}
