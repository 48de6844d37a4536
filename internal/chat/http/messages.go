package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

type MessagesHandler struct {
	MessageService *service.MessageService
}

// HandlePost godoc
//
//	@Summary		Post message
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			room_id	path		string					true	"Room ID"
//	@Param			request	body		chatsdk.MessageRequest	true	"content"
//	@Success		201		{object}	chatsdk.MessageResponse
//	@Failure		400		{object}	chatsdk.APIError	"validation failed"
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404		{object}	chatsdk.APIError	"room not found or caller is not a member"
//	@Router			/v1/rooms/{room_id}/messages [post].
func (h *MessagesHandler) HandlePost(w http.ResponseWriter, r *http.Request, id access.Identity) {
	var req chatsdk.MessageRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	msg, err := h.MessageService.PostMessage(r.Context(), id, r.PathValue("room_id"), strings.TrimSpace(req.Content))
	if err != nil {
		writeServiceError(w, r, err, "post message")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMessageResponse(msg))
}

// HandleList godoc
//
//	@Summary		List messages
//	@Description	One page of the room's messages, newest first. search matches text messages only, case-insensitively.
//	@Tags			Messages
//	@Produce		json
//	@Security		BearerAuth
//	@Param			room_id		path		string	true	"Room ID"
//	@Param			page		query		int		false	"Page number, from 1"
//	@Param			page_size	query		int		false	"Page size, at most 100"
//	@Param			search		query		string	false	"Substring to look for"
//	@Success		200			{object}	chatsdk.MessagePage
//	@Failure		400			{object}	chatsdk.APIError	"invalid paging parameters"
//	@Failure		401			{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404			{object}	chatsdk.APIError	"room not found or caller is not a member"
//	@Router			/v1/rooms/{room_id}/messages [get].
func (h *MessagesHandler) HandleList(w http.ResponseWriter, r *http.Request, id access.Identity) {
	page, err := httpx.QueryInt(r, "page", 1)
	if err != nil {
		chatsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}
	pageSize, err := httpx.QueryInt(r, "page_size", service.DefaultPageSize)
	if err != nil {
		chatsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	result, err := h.MessageService.ListMessages(r.Context(), id, r.PathValue("room_id"), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err, "list messages")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMessagePage(result))
}

// HandleEdit godoc
//
//	@Summary		Edit message
//	@Description	Replace the content of one of the caller's own text messages
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			message_id	path		string					true	"Message ID"
//	@Param			request		body		chatsdk.MessageRequest	true	"content"
//	@Success		200			{object}	chatsdk.MessageResponse
//	@Failure		400			{object}	chatsdk.APIError	"validation failed"
//	@Failure		401			{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404			{object}	chatsdk.APIError	"not found"
//	@Router			/v1/messages/{message_id} [patch].
func (h *MessagesHandler) HandleEdit(w http.ResponseWriter, r *http.Request, id access.Identity) {
	var req chatsdk.MessageRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	msg, err := h.MessageService.EditMessage(r.Context(), id, r.PathValue("message_id"), strings.TrimSpace(req.Content))
	if err != nil {
		writeServiceError(w, r, err, "edit message")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMessageResponse(msg))
}

// HandleDelete godoc
//
//	@Summary		Delete message
//	@Description	Authors may delete their own messages; admins and mods may delete any message in their room
//	@Tags			Messages
//	@Security		BearerAuth
//	@Param			message_id	path	string	true	"Message ID"
//	@Success		204
//	@Failure		401	{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404	{object}	chatsdk.APIError	"not found"
//	@Router			/v1/messages/{message_id} [delete].
func (h *MessagesHandler) HandleDelete(w http.ResponseWriter, r *http.Request, id access.Identity) {
	if err := h.MessageService.DeleteMessage(r.Context(), id, r.PathValue("message_id")); err != nil {
		writeServiceError(w, r, err, "delete message")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
