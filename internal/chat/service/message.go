package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/idx"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// MessagePage is one page of a room's messages, newest first. Next is nil on
// the last page.
type MessagePage struct {
	Total    int
	Page     int
	PageSize int
	Next     *int
	Results  []domain.Message
}

type MessageService struct {
	Store store.Store
	Clock Clock
}

// PostMessage appends a text message. Any member may post.
func (s *MessageService) PostMessage(ctx context.Context, id access.Identity, roomID, content string) (domain.Message, error) {
	err := access.Enforce(ctx, id,
		access.Authenticated,
		access.RoomRole(s.Store.RoomRoles(), roomID),
	)
	if err != nil {
		return domain.Message{}, err
	}
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, ErrInvalidInput
	}

	now := s.Clock.now()
	msg := domain.Message{
		ID:          idx.NewAt(now).String(),
		ChatRoomID:  roomID,
		CreatedByID: id.UserID(),
		Type:        domain.MessageTypeText,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Messages().CreateMessage(ctx, msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// ListMessages pages through a room's messages. page and pageSize below 1
// fall back to 1 and DefaultPageSize; pageSize is capped at MaxPageSize.
// A page beyond MaxPage is rejected with ErrInvalidInput.
// A non-empty search keeps only text messages containing it.
func (s *MessageService) ListMessages(ctx context.Context, id access.Identity, roomID string, page, pageSize int, search string) (MessagePage, error) {
	err := access.Enforce(ctx, id,
		access.Authenticated,
		access.RoomRole(s.Store.RoomRoles(), roomID),
	)
	if err != nil {
		return MessagePage{}, err
	}

	if page > MaxPage {
		return MessagePage{}, fmt.Errorf("%w: page must be at most %d", ErrInvalidInput, MaxPage)
	}
	page = max(page, 1)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)
	offset := (page - 1) * pageSize

	msgs, total, err := s.Store.Messages().ListMessages(ctx, domain.MessageQuery{
		ChatRoomID: roomID,
		Search:     strings.TrimSpace(search),
		Limit:      pageSize,
		Offset:     offset,
	})
	if err != nil {
		return MessagePage{}, err
	}

	out := MessagePage{Total: total, Page: page, PageSize: pageSize, Results: msgs}
	if offset+pageSize < total {
		next := page + 1
		out.Next = &next
	}
	return out, nil
}

// EditMessage replaces the content of the caller's own text message. Any
// other message reads as not found.
func (s *MessageService) EditMessage(ctx context.Context, id access.Identity, messageID, content string) (domain.Message, error) {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return domain.Message{}, err
	}

	msg, err := s.textMessage(ctx, messageID)
	if err != nil {
		return domain.Message{}, err
	}
	if msg.CreatedByID != id.UserID() {
		return domain.Message{}, access.ErrNotFound
	}
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, ErrInvalidInput
	}

	msg.Content = content
	msg.UpdatedAt = s.Clock.now()
	if err := s.Store.Messages().UpdateMessageContent(ctx, msg.ID, msg.Content, msg.UpdatedAt); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// DeleteMessage removes a text message written by the caller, or any text
// message when the caller is an admin or moderator of its room. Anything
// else reads as not found.
func (s *MessageService) DeleteMessage(ctx context.Context, id access.Identity, messageID string) error {
	if err := access.Enforce(ctx, id, access.Authenticated); err != nil {
		return err
	}

	msg, err := s.textMessage(ctx, messageID)
	if err != nil {
		return err
	}

	if msg.CreatedByID != id.UserID() {
		role, err := access.Membership(ctx, s.Store.RoomRoles(), id, msg.ChatRoomID)
		if err != nil {
			return err
		}
		if !role.Role.Elevated() {
			return access.ErrNotFound
		}
	}

	err = s.Store.Messages().DeleteMessage(ctx, msg.ID)
	if errors.Is(err, store.ErrNotFound) {
		return access.ErrNotFound
	}
	return err
}

func (s *MessageService) textMessage(ctx context.Context, messageID string) (domain.Message, error) {
	msg, err := s.Store.Messages().GetMessageByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Message{}, access.ErrNotFound
		}
		return domain.Message{}, err
	}
	if msg.Type != domain.MessageTypeText {
		return domain.Message{}, access.ErrNotFound
	}
	return msg, nil
}
