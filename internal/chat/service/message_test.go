package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/stretchr/testify/require"
)

func TestListMessagesPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	room := f.room(t, admin)

	for _, c := range []string{"one", "two", "three", "four", "five"} {
		f.clock.Advance(time.Second)
		_, err := f.messages.PostMessage(ctx, admin, room.ID, c)
		require.NoError(t, err)
	}

	page, err := f.messages.ListMessages(ctx, admin, room.ID, 0, 2, "")
	require.NoError(t, err)
	require.Equal(t, 5, page.Total)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 2, page.PageSize)
	require.NotNil(t, page.Next)
	require.Equal(t, 2, *page.Next)
	require.Equal(t, "five", page.Results[0].Content)

	page, err = f.messages.ListMessages(ctx, admin, room.ID, 3, 2, "")
	require.NoError(t, err)
	require.Nil(t, page.Next)
	require.Len(t, page.Results, 1)
	require.Equal(t, "one", page.Results[0].Content)

	page, err = f.messages.ListMessages(ctx, admin, room.ID, 1, 1000, "")
	require.NoError(t, err)
	require.Equal(t, MaxPageSize, page.PageSize)

	page, err = f.messages.ListMessages(ctx, admin, room.ID, 1, 0, "")
	require.NoError(t, err)
	require.Equal(t, DefaultPageSize, page.PageSize)

	page, err = f.messages.ListMessages(ctx, admin, room.ID, MaxPage, MaxPageSize, "")
	require.NoError(t, err)
	require.Empty(t, page.Results)
	require.Nil(t, page.Next)

	for _, huge := range []int{MaxPage + 1, math.MaxInt} {
		_, err = f.messages.ListMessages(ctx, admin, room.ID, huge, MaxPageSize, "")
		require.ErrorIs(t, err, ErrInvalidInput, "page %d", huge)
	}
}

func TestSearchMatchesOnlyText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	bob := f.user(t, "bob")
	room := f.room(t, admin)

	_, err := f.messages.PostMessage(ctx, admin, room.ID, "Say hi to BOB please")
	require.NoError(t, err)
	f.join(t, admin, bob, room.ID) // "User bob entered the chat."

	page, err := f.messages.ListMessages(ctx, admin, room.ID, 1, 25, "bob")
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, domain.MessageTypeText, page.Results[0].Type)

	page, err = f.messages.ListMessages(ctx, admin, room.ID, 1, 25, "")
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
}

func TestMessagePermissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin")
	bob := f.user(t, "bob")
	carol := f.user(t, "carol")
	stranger := f.user(t, "stranger")
	room := f.room(t, admin)
	f.join(t, admin, bob, room.ID)
	f.join(t, admin, carol, room.ID)

	_, err := f.messages.PostMessage(ctx, stranger, room.ID, "hello?")
	require.ErrorIs(t, err, access.ErrNotFound)
	_, err = f.messages.ListMessages(ctx, stranger, room.ID, 1, 25, "")
	require.ErrorIs(t, err, access.ErrNotFound)

	msg, err := f.messages.PostMessage(ctx, bob, room.ID, "original")
	require.NoError(t, err)

	t.Run("only the author edits", func(t *testing.T) {
		_, err := f.messages.EditMessage(ctx, admin, msg.ID, "hijacked")
		require.ErrorIs(t, err, access.ErrNotFound)

		f.clock.Advance(time.Minute)
		edited, err := f.messages.EditMessage(ctx, bob, msg.ID, "edited")
		require.NoError(t, err)
		require.Equal(t, "edited", edited.Content)
		require.True(t, edited.UpdatedAt.After(edited.CreatedAt))
	})

	t.Run("system messages are not editable", func(t *testing.T) {
		sys := f.systemMessages(t, room.ID)
		_, err := f.messages.EditMessage(ctx, bob, sys[len(sys)-1].ID, "x")
		require.ErrorIs(t, err, access.ErrNotFound)
		require.ErrorIs(t, f.messages.DeleteMessage(ctx, admin, sys[0].ID), access.ErrNotFound)
	})

	t.Run("delete needs author or elevated", func(t *testing.T) {
		require.ErrorIs(t, f.messages.DeleteMessage(ctx, stranger, msg.ID), access.ErrNotFound)
		require.ErrorIs(t, f.messages.DeleteMessage(ctx, carol, msg.ID), access.ErrNotFound)
		require.NoError(t, f.messages.DeleteMessage(ctx, admin, msg.ID))
		require.ErrorIs(t, f.messages.DeleteMessage(ctx, admin, msg.ID), access.ErrNotFound)
	})

	t.Run("author deletes own", func(t *testing.T) {
		own, err := f.messages.PostMessage(ctx, carol, room.ID, "mine")
		require.NoError(t, err)
		require.NoError(t, f.messages.DeleteMessage(ctx, carol, own.ID))
	})
}
