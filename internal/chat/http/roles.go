package http

import (
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleGet godoc
//
//	@Summary		Get room role
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			role_id	path		string	true	"Role ID"
//	@Success		200		{object}	chatsdk.RoleResponse
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404		{object}	chatsdk.APIError	"not found"
//	@Router			/v1/room-roles/{role_id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request, id access.Identity) {
	role, err := h.RolesService.GetRole(r.Context(), id, r.PathValue("role_id"))
	if err != nil {
		writeServiceError(w, r, err, "get role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRoleResponse(role))
}

// HandleUpdate godoc
//
//	@Summary		Change a member's tier
//	@Description	Requires the admin tier in the role's room
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			role_id	path		string						true	"Role ID"
//	@Param			request	body		chatsdk.UpdateRoleRequest	true	"role"
//	@Success		200		{object}	chatsdk.RoleResponse
//	@Failure		400		{object}	chatsdk.APIError	"validation failed"
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		403		{object}	chatsdk.APIError	"not enough permissions"
//	@Failure		404		{object}	chatsdk.APIError	"not found"
//	@Router			/v1/room-roles/{role_id} [patch].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request, id access.Identity) {
	var req chatsdk.UpdateRoleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	role, err := h.RolesService.UpdateRole(r.Context(), id, r.PathValue("role_id"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err, "update role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRoleResponse(role))
}

// HandleRemove godoc
//
//	@Summary		Remove a member
//	@Description	Members may remove themselves (leave); admins and mods may remove anyone in their room. Announces the departure in the room.
//	@Tags			Roles
//	@Security		BearerAuth
//	@Param			role_id	path	string	true	"Role ID"
//	@Success		204
//	@Failure		401	{object}	chatsdk.APIError	"authentication is required"
//	@Failure		403	{object}	chatsdk.APIError	"not enough permissions"
//	@Failure		404	{object}	chatsdk.APIError	"not found"
//	@Router			/v1/room-roles/{role_id} [delete].
func (h *RolesHandler) HandleRemove(w http.ResponseWriter, r *http.Request, id access.Identity) {
	if err := h.RolesService.RemoveRole(r.Context(), id, r.PathValue("role_id")); err != nil {
		writeServiceError(w, r, err, "remove role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
