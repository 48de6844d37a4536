package http

import (
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Create invite
//	@Description	Returns a still-valid invite for the room when one exists, otherwise mints a new one. Requires the admin or mod tier.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			room_id	path		string	true	"Room ID"
//	@Success		200		{object}	chatsdk.InviteResponse	"id"
//	@Failure		401		{object}	chatsdk.APIError		"authentication is required"
//	@Failure		403		{object}	chatsdk.APIError		"not enough permissions"
//	@Failure		404		{object}	chatsdk.APIError		"not found"
//	@Router			/v1/rooms/{room_id}/invite [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request, id access.Identity) {
	invite, err := h.InviteService.CreateInvite(r.Context(), id, r.PathValue("room_id"))
	if err != nil {
		writeServiceError(w, r, err, "create invite")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, chatsdk.InviteResponse{ID: invite.ID})
}

// HandleRedeem godoc
//
//	@Summary		Redeem invite
//	@Description	Joins the caller to the invite's room with the user tier and announces it in the room
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			invite_id	path		string	true	"Invite ID"
//	@Success		201			{object}	chatsdk.RoomResponse
//	@Failure		401			{object}	chatsdk.APIError			"authentication is required"
//	@Failure		404			{object}	chatsdk.APIError			"invite not found"
//	@Failure		410			{object}	chatsdk.APIError			"invite is expired"
//	@Failure		412			{object}	chatsdk.AlreadyMemberError	"already in the room, carries chat_room_id"
//	@Router			/v1/room-invite/{invite_id} [get].
func (h *InvitesHandler) HandleRedeem(w http.ResponseWriter, r *http.Request, id access.Identity) {
	room, err := h.InviteService.RedeemInvite(r.Context(), id, r.PathValue("invite_id"))
	if err != nil {
		writeServiceError(w, r, err, "redeem invite")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toRoomResponse(room))
}
