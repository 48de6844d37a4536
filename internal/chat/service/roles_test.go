package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/stretchr/testify/require"
)

func TestJoinAndLeaveFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	room := f.room(t, alice)
	require.Equal(t, domain.RoleAdmin, roleOf(t, room, alice.UserID()).Role)

	role := f.join(t, alice, bob, room.ID)
	require.Equal(t, domain.RoleUser, role.Role)

	require.NoError(t, f.roles.RemoveRole(ctx, bob, role.ID))

	sys := f.systemMessages(t, room.ID)
	require.Len(t, sys, 2)
	require.Equal(t, "User bob left the chat.", sys[0].Content)
	require.Equal(t, bob.UserID(), sys[0].CreatedByID)
	require.Equal(t, "User bob entered the chat.", sys[1].Content)

	_, err := f.store.RoomRoles().GetRoleByID(ctx, role.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	evs := f.events.Events()
	last := evs[len(evs)-1]
	require.Equal(t, events.MemberLeft, last.Type)
	require.Equal(t, bob.UserID(), last.UserID)
	require.Equal(t, bob.UserID(), last.ActorID)
}

func TestRemoveRolePermissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	mallory := f.user(t, "mallory")

	room := f.room(t, admin)
	bobRole := f.join(t, admin, bob, room.ID)
	carolRole := f.join(t, admin, carol, room.ID)

	require.ErrorIs(t, f.roles.RemoveRole(ctx, access.Anonymous, bobRole.ID), access.ErrUnauthenticated)
	require.ErrorIs(t, f.roles.RemoveRole(ctx, carol, bobRole.ID), access.ErrForbidden)
	require.ErrorIs(t, f.roles.RemoveRole(ctx, mallory, bobRole.ID), access.ErrNotFound)
	require.ErrorIs(t, f.roles.RemoveRole(ctx, admin, "missing"), access.ErrNotFound)

	// An admin kick is announced with the admin as author.
	require.NoError(t, f.roles.RemoveRole(ctx, admin, carolRole.ID))
	sys := f.systemMessages(t, room.ID)
	require.Equal(t, "User carol left the chat.", sys[0].Content)
	require.Equal(t, admin.UserID(), sys[0].CreatedByID)

	_, err := f.store.RoomRoles().GetRoleByID(ctx, bobRole.ID)
	require.NoError(t, err)
}

func TestGetAndUpdateRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	bob := f.user(t, "bob")
	outsider := f.user(t, "outsider")

	room := f.room(t, admin)
	bobRole := f.join(t, admin, bob, room.ID)
	adminRole := roleOf(t, room, admin.UserID())

	got, err := f.roles.GetRole(ctx, bob, adminRole.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, got.Role)

	_, err = f.roles.GetRole(ctx, outsider, adminRole.ID)
	require.ErrorIs(t, err, access.ErrNotFound)

	_, err = f.roles.UpdateRole(ctx, bob, bobRole.ID, domain.RoleAdmin)
	require.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.roles.UpdateRole(ctx, admin, bobRole.ID, domain.Role("owner"))
	require.ErrorIs(t, err, ErrInvalidRole)

	updated, err := f.roles.UpdateRole(ctx, admin, bobRole.ID, domain.RoleModerator)
	require.NoError(t, err)
	require.Equal(t, domain.RoleModerator, updated.Role)

	// A moderator can now remove others but still cannot change tiers.
	_, err = f.roles.UpdateRole(ctx, bob, adminRole.ID, domain.RoleUser)
	require.ErrorIs(t, err, access.ErrForbidden)
}

// ghostUserStore pretends one user row has vanished.
type ghostUserStore struct {
	store.Store
	hidden string
}

func (g ghostUserStore) Users() store.Users { return ghostUsers{g.Store.Users(), g.hidden} }

type ghostUsers struct {
	store.Users
	hidden string
}

func (g ghostUsers) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if id == g.hidden {
		return domain.User{}, store.ErrNotFound
	}
	return g.Users.GetUserByID(ctx, id)
}

func TestRemoveRoleOfMissingUserIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	bob := f.user(t, "bob")

	room := f.room(t, admin)
	bobRole := f.join(t, admin, bob, room.ID)

	f.wire(ghostUserStore{Store: f.store, hidden: bob.UserID()})
	require.ErrorIs(t, f.roles.RemoveRole(ctx, admin, bobRole.ID), access.ErrNotFound)

	_, err := f.store.RoomRoles().GetRoleByID(ctx, bobRole.ID)
	require.NoError(t, err)
	require.Len(t, f.systemMessages(t, room.ID), 1)
}
