package http

import (
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an account and return it together with an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatsdk.RegistrationRequest	true	"email, name, password"
//	@Success		201		{object}	chatsdk.AuthResponse		"user, access_token"
//	@Failure		400		{object}	chatsdk.APIError			"error, error_description, detail"
//	@Failure		409		{object}	chatsdk.APIError			"email already in use"
//	@Failure		500		{object}	chatsdk.APIError			"error, error_description"
//	@Router			/v1/auth/registration [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req chatsdk.RegistrationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "register user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(user, token))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	chatsdk.AuthResponse	"user, access_token"
//	@Failure		400		{object}	chatsdk.APIError		"error, error_description, detail"
//	@Failure		401		{object}	chatsdk.APIError		"invalid credentials"
//	@Failure		500		{object}	chatsdk.APIError		"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req chatsdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(user, token))
}

// HandleToken godoc
//
//	@Summary		Refresh access token
//	@Description	Issue a fresh access token for the authenticated caller
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	chatsdk.TokenResponse	"token, token_type, expires_at"
//	@Failure		401	{object}	chatsdk.APIError		"authentication is required"
//	@Router			/v1/auth/token [get]
//	@Router			/v1/auth/token [post].
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request, id access.Identity) {
	token, err := h.AuthService.IssueToken(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "issue token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(token))
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	chatsdk.UserResponse
//	@Failure		401	{object}	chatsdk.APIError	"authentication is required"
//	@Router			/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request, id access.Identity) {
	user, err := h.UserService.Me(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "load current user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
