//go:build e2e

package chat_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/stretchr/testify/require"
)

// TestInviteJoinLeave walks a user through joining a room with an invite,
// chatting and leaving, and checks the announcements left behind.
func TestInviteJoinLeave(t *testing.T) {
	client := setupChatContainer(t)
	ctx := t.Context()

	alice := registerUser(t, client, "Alice")
	bob := registerUser(t, client, "Bob")

	room, err := alice.CreateRoom(ctx, chatsdk.RoomRequest{Name: "general"})
	require.NoError(t, err)

	invite, err := alice.CreateInvite(ctx, room.ID)
	require.NoError(t, err)

	reused, err := alice.CreateInvite(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, invite.ID, reused.ID, "A fresh invite should be reused")

	_, err = bob.CreateInvite(ctx, room.ID)
	assertStatus(t, err, http.StatusNotFound, "Non-member creating an invite")

	joined, err := bob.RedeemInvite(ctx, invite.ID)
	require.NoError(t, err)
	require.Len(t, joined.Roles, 2)

	_, err = bob.RedeemInvite(ctx, invite.ID)
	var already *chatsdk.AlreadyMemberError
	require.True(t, errors.As(err, &already), "Second redemption should be 412, got %v", err)
	require.Equal(t, room.ID, already.ChatRoomID)

	_, err = bob.PostMessage(ctx, room.ID, chatsdk.MessageRequest{Content: "hi all"})
	require.NoError(t, err)

	var bobRoleID string
	for _, r := range joined.Roles {
		if r.UserID == bob.User().ID {
			bobRoleID = r.ID
		}
	}
	require.NotEmpty(t, bobRoleID)

	_, err = bob.UpdateRole(ctx, bobRoleID, chatsdk.UpdateRoleRequest{Role: chatsdk.RoleAdmin})
	assertStatus(t, err, http.StatusForbidden, "User promoting themselves")

	require.NoError(t, bob.RemoveRole(ctx, bobRoleID))

	page, err := alice.ListMessages(ctx, room.ID, chatsdk.ListMessagesOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Equal(t, "User Bob left the chat.", page.Results[0].Content)
	require.Equal(t, "hi all", page.Results[1].Content)
	require.Equal(t, "User Bob entered the chat.", page.Results[2].Content)

	_, err = bob.ListMessages(ctx, room.ID, chatsdk.ListMessagesOptions{})
	assertStatus(t, err, http.StatusNotFound, "Former member listing messages")
}

// TestRoomAdministration covers rename and delete permissions.
func TestRoomAdministration(t *testing.T) {
	client := setupChatContainer(t)
	ctx := t.Context()

	alice := registerUser(t, client, "Alice")
	bob := registerUser(t, client, "Bob")

	room, err := alice.CreateRoom(ctx, chatsdk.RoomRequest{Name: "before"})
	require.NoError(t, err)
	invite, err := alice.CreateInvite(ctx, room.ID)
	require.NoError(t, err)
	_, err = bob.RedeemInvite(ctx, invite.ID)
	require.NoError(t, err)

	_, err = bob.RenameRoom(ctx, room.ID, chatsdk.RoomRequest{Name: "hijacked"})
	assertStatus(t, err, http.StatusForbidden, "User renaming a room")

	renamed, err := alice.RenameRoom(ctx, room.ID, chatsdk.RoomRequest{Name: "after"})
	require.NoError(t, err)
	require.Equal(t, "after", renamed.Name)

	err = bob.DeleteRoom(ctx, room.ID)
	assertStatus(t, err, http.StatusForbidden, "User deleting a room")

	require.NoError(t, alice.DeleteRoom(ctx, room.ID))

	_, err = alice.GetRoom(ctx, room.ID)
	assertStatus(t, err, http.StatusNotFound, "Deleted room")
}
