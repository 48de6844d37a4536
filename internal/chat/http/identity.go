package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

// identityHandlerFunc is a handler that receives the caller's identity.
type identityHandlerFunc func(w http.ResponseWriter, r *http.Request, id access.Identity)

// withIdentity resolves the Authorization header once and hands the result
// to h. Missing or unusable credentials arrive as access.Anonymous; the
// handler's policy decides whether that is acceptable.
func (r *Router) withIdentity(h identityHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		id, err := r.resolver.Resolve(ctx, req.Header.Get("Authorization"))
		if err != nil {
			slogx.FromContext(ctx).Error("failed to resolve identity", slog.Any("error", err))
			chatsdk.ErrServerError.WriteError(w)
			return
		}

		if id.Authenticated() {
			req = req.WithContext(slogx.With(ctx, slog.String("user_id", id.UserID())))
		}

		h(w, req, id)
	})
}
