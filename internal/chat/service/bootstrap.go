package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/cryptox"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

type BootstrapService struct {
	Store     store.Store
	Tokens    jwtx.Issuer
	AccessTTL time.Duration
	Clock     Clock

	// Token guards bootstrap when set.
	Token string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first account as an active superuser.
func (s *BootstrapService) Bootstrap(ctx context.Context, token, email, name, password string) (domain.User, jwtx.Token, error) {
	l := slogx.FromContext(ctx)
	now := s.Clock.now()

	// 1. Refuse once anyone exists
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		l.Error("failed to check bootstrap state", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, jwtx.Token{}, ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, jwtx.Token{}, ErrBootstrapUnauthorized
	}

	// 3. Hash password
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.User{}, jwtx.Token{}, err
	}

	// 4. Create the superuser, re-checking emptiness inside the transaction
	admin := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, jwtx.Token{}, ErrBootstrapAlready
		}
		return domain.User{}, jwtx.Token{}, err
	}

	tok, err := s.Tokens.Issue(admin.ID, now, s.AccessTTL)
	if err != nil {
		return domain.User{}, jwtx.Token{}, err
	}

	l.Info("system bootstrapped", slog.String("admin_user_id", admin.ID))
	return admin, tok, nil
}
