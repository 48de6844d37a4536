package http

import (
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Get user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		string	true	"User ID"
//	@Success		200		{object}	chatsdk.UserResponse
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		404		{object}	chatsdk.APIError	"not found"
//	@Router			/v1/users/{user_id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request, id access.Identity) {
	user, err := h.UserService.GetUser(r.Context(), id, r.PathValue("user_id"))
	if err != nil {
		writeServiceError(w, r, err, "get user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdate godoc
//
//	@Summary		Update user flags
//	@Description	Activate, deactivate, promote or demote an account. Superuser only.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		string						true	"User ID"
//	@Param			request	body		chatsdk.UpdateUserRequest	true	"is_active, is_superuser"
//	@Success		200		{object}	chatsdk.UserResponse
//	@Failure		400		{object}	chatsdk.APIError	"validation failed"
//	@Failure		401		{object}	chatsdk.APIError	"authentication is required"
//	@Failure		403		{object}	chatsdk.APIError	"superuser required"
//	@Failure		404		{object}	chatsdk.APIError	"not found"
//	@Router			/v1/users/{user_id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request, id access.Identity) {
	var req chatsdk.UpdateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.UserService.SetUserFlags(r.Context(), id, r.PathValue("user_id"), req.IsActive, req.IsSuperuser)
	if err != nil {
		writeServiceError(w, r, err, "update user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
