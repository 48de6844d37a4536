package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store/drivers/sqlite"
	"github.com/aussiebroadwan/bartabchat/pkg/cryptox"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath("")
	os.Exit(m.Run())
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store    store.Store
	clock    *fakeClock
	codec    *jwtx.Codec
	events   *events.Recorder
	rooms    *RoomService
	invites  *InviteService
	roles    *RolesService
	messages *MessageService
	users    *UserService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec([]byte("service-test-secret"), jwtx.DefaultAlg, 30*time.Minute)
	require.NoError(t, err)

	f := &fixture{store: st, clock: newFakeClock(), codec: codec, events: &events.Recorder{}}
	f.wire(st)
	return f
}

// wire (re)builds the services on top of st.
func (f *fixture) wire(st store.Store) {
	clock := Clock(f.clock.Now)
	f.rooms = &RoomService{Store: st, Events: f.events, Clock: clock}
	f.invites = &InviteService{
		Store: st, Events: f.events, Clock: clock,
		Validity: 24 * time.Hour, ReuseWindow: time.Hour,
	}
	f.roles = &RolesService{Store: st, Events: f.events, Clock: clock}
	f.messages = &MessageService{Store: st, Clock: clock}
	f.users = &UserService{Store: st, Clock: clock}
	f.auth = &AuthService{Store: st, Tokens: f.codec, AccessTTL: 30 * time.Minute, Clock: clock}
}

// user inserts an active user and returns its identity.
func (f *fixture) user(t *testing.T, name string) access.Identity {
	t.Helper()

	now := f.clock.Now()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        name + "@example.com",
		Name:         name,
		PasswordHash: "unused",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	return access.Identity{User: &u, Token: "test"}
}

func (f *fixture) room(t *testing.T, owner access.Identity) domain.RoomWithRoles {
	t.Helper()
	room, err := f.rooms.CreateRoom(context.Background(), owner, "general")
	require.NoError(t, err)
	return room
}

func (f *fixture) join(t *testing.T, admin, joiner access.Identity, roomID string) domain.RoomRole {
	t.Helper()
	ctx := context.Background()

	inv, err := f.invites.CreateInvite(ctx, admin, roomID)
	require.NoError(t, err)
	room, err := f.invites.RedeemInvite(ctx, joiner, inv.ID)
	require.NoError(t, err)
	return roleOf(t, room, joiner.UserID())
}

func roleOf(t *testing.T, room domain.RoomWithRoles, userID string) domain.RoomRole {
	t.Helper()
	for _, r := range room.Roles {
		if r.UserID == userID {
			return r
		}
	}
	t.Fatalf("user %s has no role in room %s", userID, room.ID)
	return domain.RoomRole{}
}

func (f *fixture) systemMessages(t *testing.T, roomID string) []domain.Message {
	t.Helper()
	msgs, _, err := f.store.Messages().ListMessages(context.Background(), domain.MessageQuery{ChatRoomID: roomID, Limit: 100})
	require.NoError(t, err)

	var out []domain.Message
	for _, m := range msgs {
		if m.Type == domain.MessageTypeSystem {
			out = append(out, m)
		}
	}
	return out
}
