package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

// UserLookup is the slice of the user repository the resolver needs.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

// Resolver maps an Authorization header to an Identity.
type Resolver struct {
	Verifier jwtx.Verifier
	Users    UserLookup

	// Now defaults to time.Now.
	Now func() time.Time
}

func NewResolver(verifier jwtx.Verifier, users UserLookup) *Resolver {
	return &Resolver{Verifier: verifier, Users: users, Now: time.Now}
}

// Resolve returns the anonymous identity for a missing or unusable
// credential, an unknown subject or an inactive user. Only lookup failures
// other than store.ErrNotFound are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, header string) (Identity, error) {
	log := slogx.FromContext(ctx)

	if header == "" {
		return Anonymous, nil
	}

	token, ok := httpx.BearerToken(header)
	if !ok {
		log.Debug("ignoring malformed authorization header")
		return Anonymous, nil
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	claims, err := r.Verifier.Verify(token, now())
	if err != nil {
		log.Debug("access token rejected", slog.Any("error", err))
		return Anonymous, nil
	}

	user, err := r.Users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("access token subject does not exist",
				slog.String("user_id", claims.Subject),
			)
			return Anonymous, nil
		}
		return Anonymous, fmt.Errorf("resolve identity: %w", err)
	}

	if !user.IsActive {
		log.Warn("access token presented for inactive user",
			slog.String("user_id", user.ID),
		)
		return Anonymous, nil
	}

	return Identity{User: &user, Token: token}, nil
}
