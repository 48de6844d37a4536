package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

// writeServiceError maps access and service errors onto the API error
// envelope. Anything unrecognised is logged and answered with 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var member *service.AlreadyMemberError

	switch {
	case errors.As(err, &member):
		(&chatsdk.AlreadyMemberError{ChatRoomID: member.ChatRoomID}).WriteError(w)
	case errors.Is(err, access.ErrUnauthenticated):
		chatsdk.ErrUnauthenticated.WriteError(w)
	case errors.Is(err, access.ErrForbidden):
		chatsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, access.ErrNotFound):
		chatsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInviteNotFound):
		chatsdk.ErrNotFound.WithDescription("invite not found").WriteError(w)
	case errors.Is(err, service.ErrInviteExpired):
		chatsdk.ErrGone.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		chatsdk.ErrInvalidGrant.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		chatsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidRole):
		chatsdk.ErrValidation.WithDetail(map[string]string{"role": "must be one of admin, mod, user"}).WriteError(w)
	case errors.Is(err, service.ErrInvalidInput):
		chatsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrBootstrapAlready):
		chatsdk.ErrAlreadyBootstrapped.WriteError(w)
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		chatsdk.ErrInvalidGrant.WithDescription("invalid bootstrap token").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("failed to "+action, slog.Any("error", err))
		chatsdk.ErrServerError.WriteError(w)
	}
}

// validator is implemented by the chatsdk request payloads.
type validator interface {
	Validate() error
}

// decodeRequest reads and validates a JSON body, writing the 400 itself on
// failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		chatsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return false
	}
	if err := v.Validate(); err != nil {
		chatsdk.ErrValidation.WithDetail(chatsdk.FieldErrors(err)).WriteError(w)
		return false
	}
	return true
}
