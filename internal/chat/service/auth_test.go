package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, tok, err := f.auth.Register(ctx, "  Alice@Example.com ", "Alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.True(t, user.IsActive)
	require.False(t, user.IsSuperuser)
	require.Equal(t, f.clock.Now().Add(30*time.Minute), tok.ExpiresAt)

	claims, err := f.codec.Verify(tok.Value, f.clock.Now())
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)

	_, _, err = f.auth.Register(ctx, "alice@example.com", "Other", "secret123")
	require.ErrorIs(t, err, ErrEmailTaken)

	got, _, err := f.auth.Login(ctx, "ALICE@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, _, err = f.auth.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInactiveUsersCannotLoginOrResolve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.user(t, "root")
	root.User.IsSuperuser = true
	require.NoError(t, f.store.Users().UpdateUserFlags(ctx, root.UserID(), true, true, f.clock.Now()))

	user, tok, err := f.auth.Register(ctx, "bob@example.com", "Bob", "secret123")
	require.NoError(t, err)

	resolver := access.NewResolver(f.codec, f.store.Users())
	resolver.Now = f.clock.Now

	id, err := resolver.Resolve(ctx, "Bearer "+tok.Value)
	require.NoError(t, err)
	require.True(t, id.Authenticated())

	_, err = f.users.SetUserFlags(ctx, id, user.ID, boolPtr(false), nil)
	require.ErrorIs(t, err, access.ErrForbidden)

	updated, err := f.users.SetUserFlags(ctx, root, user.ID, boolPtr(false), nil)
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	id, err = resolver.Resolve(ctx, "Bearer "+tok.Value)
	require.NoError(t, err)
	require.False(t, id.Authenticated())

	_, _, err = f.auth.Login(ctx, "bob@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueTokenAndUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.auth.IssueToken(ctx, access.Anonymous)
	require.ErrorIs(t, err, access.ErrUnauthenticated)

	tok, err := f.auth.IssueToken(ctx, alice)
	require.NoError(t, err)
	claims, err := f.codec.Verify(tok.Value, f.clock.Now())
	require.NoError(t, err)
	require.Equal(t, alice.UserID(), claims.Subject)

	me, err := f.users.Me(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, alice.UserID(), me.ID)

	_, err = f.users.GetUser(ctx, alice, "missing")
	require.ErrorIs(t, err, access.ErrNotFound)
	_, err = f.users.GetUser(ctx, access.Anonymous, alice.UserID())
	require.ErrorIs(t, err, access.ErrUnauthenticated)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := &BootstrapService{
		Store: f.store, Tokens: f.codec, AccessTTL: time.Minute,
		Clock: f.clock.Now, Token: "let-me-in",
	}

	_, _, err := svc.Bootstrap(ctx, "wrong", "root@example.com", "Root", "secret123")
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	admin, tok, err := svc.Bootstrap(ctx, "let-me-in", "root@example.com", "Root", "secret123")
	require.NoError(t, err)
	require.True(t, admin.IsSuperuser)
	require.NotEmpty(t, tok.Value)

	_, _, err = svc.Bootstrap(ctx, "let-me-in", "again@example.com", "Again", "secret123")
	require.ErrorIs(t, err, ErrBootstrapAlready)

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)
}

func boolPtr(b bool) *bool { return &b }
