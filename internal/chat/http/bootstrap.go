package http

import (
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

// BootstrapTokenHeader may carry the bootstrap token instead of the body.
const BootstrapTokenHeader = "X-Bootstrap-Token"

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the chat service
//	@Description	Creates the first account as an active superuser. Only available while no users exist. When a bootstrap token is configured it must be sent in the X-Bootstrap-Token header or the request body.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						false	"Bootstrap token"
//	@Param			request				body		chatsdk.BootstrapRequest	true	"Superuser account"
//	@Success		201					{object}	chatsdk.AuthResponse		"user, access_token"
//	@Failure		400					{object}	chatsdk.APIError			"Invalid request body or validation failed"
//	@Failure		401					{object}	chatsdk.APIError			"Missing or invalid bootstrap token"
//	@Failure		409					{object}	chatsdk.APIError			"System already bootstrapped"
//	@Failure		500					{object}	chatsdk.APIError			"Failed to create the superuser"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	var req chatsdk.BootstrapRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token := r.Header.Get(BootstrapTokenHeader)
	if token == "" {
		token = req.Token
	}

	user, issued, err := h.BootstrapService.Bootstrap(r.Context(), token, req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "bootstrap")
		return
	}

	l.Info("Bootstrap complete")
	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(user, issued))
}
