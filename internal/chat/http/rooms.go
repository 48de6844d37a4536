package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

type RoomsHandler struct {
	RoomService *service.RoomService
}

// HandleList godoc
//
//	@Summary		List rooms
//	@Description	Rooms the caller belongs to, with their full membership
//	@Tags			Rooms
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		chatsdk.RoomResponse
//	@Failure		401	{object}	chatsdk.APIError	"authentication is required"
//	@Router			/v1/rooms [get].
func (h *RoomsHandler) HandleList(w http.ResponseWriter, r *http.Request, id access.Identity) {
	rooms, err := h.RoomService.ListRooms(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "list rooms")
		return
	}

	out := make([]chatsdk.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create room
//	@Description	The creator becomes the room's admin
//	@Tags			Rooms
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		chatsdk.RoomRequest	true	"name"
//	@Success		201		{object}	chatsdk.RoomResponse
//	@Failure		400		{object}	chatsdk.APIError	"validation failed"
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Router			/v1/rooms [post].
func (h *RoomsHandler) HandleCreate(w http.ResponseWriter, r *http.Request, id access.Identity) {
	var req chatsdk.RoomRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	room, err := h.RoomService.CreateRoom(r.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		writeServiceError(w, r, err, "create room")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toRoomResponse(room))
}

// HandleGet godoc
//
//	@Summary		Get room
//	@Tags			Rooms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			room_id	path		string	true	"Room ID"
//	@Success		200		{object}	chatsdk.RoomResponse
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404		{object}	chatsdk.APIError	"room not found or caller is not a member"
//	@Router			/v1/rooms/{room_id} [get].
func (h *RoomsHandler) HandleGet(w http.ResponseWriter, r *http.Request, id access.Identity) {
	room, err := h.RoomService.GetRoom(r.Context(), id, r.PathValue("room_id"))
	if err != nil {
		writeServiceError(w, r, err, "get room")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRoomResponse(room))
}

// HandleRename godoc
//
//	@Summary		Rename room
//	@Description	Requires the admin or mod tier in the room
//	@Tags			Rooms
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			room_id	path		string				true	"Room ID"
//	@Param			request	body		chatsdk.RoomRequest	true	"name"
//	@Success		200		{object}	chatsdk.RoomResponse
//	@Failure		400		{object}	chatsdk.APIError	"validation failed"
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		403		{object}	chatsdk.APIError	"not enough permissions"
//	@Failure		404		{object}	chatsdk.APIError	"not found"
//	@Router			/v1/rooms/{room_id} [patch].
func (h *RoomsHandler) HandleRename(w http.ResponseWriter, r *http.Request, id access.Identity) {
	var req chatsdk.RoomRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	room, err := h.RoomService.RenameRoom(r.Context(), id, r.PathValue("room_id"), strings.TrimSpace(req.Name))
	if err != nil {
		writeServiceError(w, r, err, "rename room")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRoomResponse(room))
}

// HandleDelete godoc
//
//	@Summary		Delete room
//	@Description	Requires the admin tier. Removes memberships, invites and messages.
//	@Tags			Rooms
//	@Security		BearerAuth
//	@Param			room_id	path	string	true	"Room ID"
//	@Success		204
//	@Failure		401	{object}	chatsdk.APIError	"authentication is required"
//	@Failure		403	{object}	chatsdk.APIError	"not enough permissions"
//	@Failure		404	{object}	chatsdk.APIError	"not found"
//	@Router			/v1/rooms/{room_id} [delete].
func (h *RoomsHandler) HandleDelete(w http.ResponseWriter, r *http.Request, id access.Identity) {
	if err := h.RoomService.DeleteRoom(r.Context(), id, r.PathValue("room_id")); err != nil {
		writeServiceError(w, r, err, "delete room")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
