package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/stretchr/testify/require"
)

func TestRoomLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	bob := f.user(t, "bob")
	stranger := f.user(t, "stranger")

	_, err := f.rooms.CreateRoom(ctx, admin, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.rooms.CreateRoom(ctx, access.Anonymous, "x")
	require.ErrorIs(t, err, access.ErrUnauthenticated)

	room := f.room(t, admin)
	bobRole := f.join(t, admin, bob, room.ID)

	rooms, err := f.rooms.ListRooms(ctx, bob)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Len(t, rooms[0].Roles, 2)

	rooms, err = f.rooms.ListRooms(ctx, stranger)
	require.NoError(t, err)
	require.Empty(t, rooms)

	_, err = f.rooms.GetRoom(ctx, stranger, room.ID)
	require.ErrorIs(t, err, access.ErrNotFound)

	_, err = f.rooms.RenameRoom(ctx, bob, room.ID, "bobs")
	require.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.roles.UpdateRole(ctx, admin, bobRole.ID, domain.RoleModerator)
	require.NoError(t, err)
	renamed, err := f.rooms.RenameRoom(ctx, bob, room.ID, "bobs")
	require.NoError(t, err)
	require.Equal(t, "bobs", renamed.Name)

	require.ErrorIs(t, f.rooms.DeleteRoom(ctx, bob, room.ID), access.ErrForbidden)
	require.NoError(t, f.rooms.DeleteRoom(ctx, admin, room.ID))

	_, err = f.rooms.GetRoom(ctx, admin, room.ID)
	require.ErrorIs(t, err, access.ErrNotFound)
}
