package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type userMap map[string]domain.User

func (m userMap) GetUserByID(_ context.Context, id string) (domain.User, error) {
	u, ok := m[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

type failingUsers struct{ err error }

func (f failingUsers) GetUserByID(context.Context, string) (domain.User, error) {
	return domain.User{}, f.err
}

type roleMap map[[2]string]domain.RoomRole

func (m roleMap) GetRoleForUser(_ context.Context, roomID, userID string) (domain.RoomRole, error) {
	r, ok := m[[2]string{roomID, userID}]
	if !ok {
		return domain.RoomRole{}, store.ErrNotFound
	}
	return r, nil
}

func (m roleMap) add(id, roomID, userID string, role domain.Role) domain.RoomRole {
	rr := domain.RoomRole{ID: id, ChatRoomID: roomID, UserID: userID, Role: role}
	m[[2]string{roomID, userID}] = rr
	return rr
}

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func newCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.NewCodec([]byte("test-secret"), jwtx.DefaultAlg, 30*time.Minute)
	require.NoError(t, err)
	return codec
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	codec := newCodec(t)

	users := userMap{
		"alice": {ID: "alice", Email: "alice@example.com", IsActive: true},
		"ghost": {ID: "ghost", Email: "ghost@example.com", IsActive: false},
	}
	r := NewResolver(codec, users)
	r.Now = func() time.Time { return now }

	issue := func(sub string, at time.Time) string {
		tok, err := codec.Issue(sub, at, time.Minute)
		require.NoError(t, err)
		return tok.Value
	}

	other, err := jwtx.NewCodec([]byte("other-secret"), jwtx.DefaultAlg, time.Minute)
	require.NoError(t, err)
	foreign, err := other.Issue("alice", now, time.Minute)
	require.NoError(t, err)

	anonymous := map[string]string{
		"no header":         "",
		"wrong scheme":      "Basic dXNlcjpwYXNz",
		"bearer only":       "Bearer",
		"garbage token":     "Bearer not.a.token",
		"expired token":     "Bearer " + issue("alice", now.Add(-time.Hour)),
		"unknown subject":   "Bearer " + issue("nobody", now),
		"inactive user":     "Bearer " + issue("ghost", now),
		"foreign signature": "Bearer " + foreign.Value,
	}
	for name, header := range anonymous {
		t.Run(name, func(t *testing.T) {
			id, err := r.Resolve(ctx, header)
			require.NoError(t, err)
			require.False(t, id.Authenticated())
			require.Empty(t, id.UserID())
			require.Empty(t, id.Token)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		token := issue("alice", now)
		id, err := r.Resolve(ctx, "bearer "+token)
		require.NoError(t, err)
		require.True(t, id.Authenticated())
		require.Equal(t, "alice", id.UserID())
		require.Equal(t, token, id.Token)
		require.False(t, id.IsSuperuser())
	})
}

func TestResolvePropagatesStoreFailure(t *testing.T) {
	codec := newCodec(t)
	boom := errors.New("database is down")

	r := NewResolver(codec, failingUsers{err: boom})
	r.Now = func() time.Time { return now }

	tok, err := codec.Issue("alice", now, time.Minute)
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), "Bearer "+tok.Value)
	require.ErrorIs(t, err, boom)
	require.False(t, id.Authenticated())
}

func TestEnforceStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	var calls []string
	step := func(name string, err error) Check {
		return func(context.Context, Identity) error {
			calls = append(calls, name)
			return err
		}
	}

	err := Enforce(ctx, Anonymous, step("a", nil), step("b", ErrForbidden), step("c", nil))
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, []string{"a", "b"}, calls)

	require.NoError(t, Enforce(ctx, Anonymous))
}

func TestAuthenticatedAndSuperuser(t *testing.T) {
	ctx := context.Background()
	plain := Identity{User: &domain.User{ID: "u"}}
	super := Identity{User: &domain.User{ID: "s", IsSuperuser: true}}

	require.ErrorIs(t, Authenticated(ctx, Anonymous), ErrUnauthenticated)
	require.NoError(t, Authenticated(ctx, plain))

	require.ErrorIs(t, Superuser(ctx, plain), ErrForbidden)
	require.ErrorIs(t, Superuser(ctx, Anonymous), ErrForbidden)
	require.NoError(t, Superuser(ctx, super))

	require.ErrorIs(t, Enforce(ctx, Anonymous, Authenticated, Superuser), ErrUnauthenticated)
}

func TestRoomRole(t *testing.T) {
	ctx := context.Background()
	roles := roleMap{}
	roles.add("r1", "room", "user", domain.RoleUser)
	roles.add("r2", "room", "mod", domain.RoleModerator)

	member := Identity{User: &domain.User{ID: "user"}}
	mod := Identity{User: &domain.User{ID: "mod"}}
	stranger := Identity{User: &domain.User{ID: "stranger"}}

	require.NoError(t, RoomRole(roles, "room")(ctx, member))
	require.ErrorIs(t, RoomRole(roles, "room")(ctx, stranger), ErrNotFound)
	require.ErrorIs(t, RoomRole(roles, "room", domain.RoleAdmin)(ctx, mod), ErrForbidden)
	require.NoError(t, RoomRole(roles, "room", domain.RoleAdmin, domain.RoleModerator)(ctx, mod))
	require.ErrorIs(t, RoomRole(roles, "room")(ctx, Anonymous), ErrUnauthenticated)

	role, err := Membership(ctx, roles, member, "room")
	require.NoError(t, err)
	require.Equal(t, "r1", role.ID)
}

func TestSelfOrElevated(t *testing.T) {
	ctx := context.Background()
	roles := roleMap{}
	userA := roles.add("ra", "room", "a", domain.RoleUser)
	userB := roles.add("rb", "room", "b", domain.RoleUser)
	roles.add("rm", "room", "m", domain.RoleModerator)
	roles.add("rx", "other", "x", domain.RoleAdmin)

	a := Identity{User: &domain.User{ID: "a"}}
	m := Identity{User: &domain.User{ID: "m"}}
	x := Identity{User: &domain.User{ID: "x"}}

	require.NoError(t, SelfOrElevated(roles, userA)(ctx, a), "self removal")
	require.ErrorIs(t, SelfOrElevated(roles, userB)(ctx, a), ErrForbidden)
	require.NoError(t, SelfOrElevated(roles, userB)(ctx, m), "moderator kick")
	require.ErrorIs(t, SelfOrElevated(roles, userB)(ctx, x), ErrNotFound, "admin of another room")
	require.ErrorIs(t, SelfOrElevated(roles, userB)(ctx, Anonymous), ErrUnauthenticated)
}

func TestCanActOn(t *testing.T) {
	self := domain.RoomRole{ChatRoomID: "room", UserID: "a", Role: domain.RoleUser}
	peer := domain.RoomRole{ChatRoomID: "room", UserID: "b", Role: domain.RoleAdmin}
	admin := domain.RoomRole{ChatRoomID: "room", UserID: "c", Role: domain.RoleAdmin}
	elsewhere := domain.RoomRole{ChatRoomID: "other", UserID: "c", Role: domain.RoleAdmin}

	require.True(t, CanActOn(self, self))
	require.False(t, CanActOn(self, peer))
	require.True(t, CanActOn(admin, peer))
	require.False(t, CanActOn(elsewhere, self))
}
