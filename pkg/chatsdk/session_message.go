package chatsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PostMessage posts a text message to a room.
func (s *Session) PostMessage(ctx context.Context, roomID string, req MessageRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := s.call(ctx, http.MethodPost, roomPath(roomID)+"/messages", req, &msg, http.StatusCreated); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns one page of a room's messages, newest first.
func (s *Session) ListMessages(ctx context.Context, roomID string, opts ListMessagesOptions) (*MessagePage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	path := roomPath(roomID) + "/messages"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page MessagePage
	if err := s.call(ctx, http.MethodGet, path, nil, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

// EditMessage replaces the content of the caller's own text message.
func (s *Session) EditMessage(ctx context.Context, messageID string, req MessageRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/messages/"+url.PathEscape(messageID), req, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage deletes a text message authored by the caller, or any text
// message in a room where the caller is admin or mod.
func (s *Session) DeleteMessage(ctx context.Context, messageID string) error {
	return s.callNoContent(ctx, http.MethodDelete, "/v1/messages/"+url.PathEscape(messageID))
}
