package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"

	_ "github.com/aussiebroadwan/bartabchat/api/chat" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits holds the per-route-class limiter profiles.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultRateLimits returns the httpx profiles unchanged.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	resolver     *access.Resolver
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	Limits RateLimits

	store            store.Store
	AuthService      *service.AuthService
	BootstrapService *service.BootstrapService
	UserService      *service.UserService
	RoomService      *service.RoomService
	InviteService    *service.InviteService
	RolesService     *service.RolesService
	MessageService   *service.MessageService
}

func NewRouter(
	resolver *access.Resolver,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		resolver:     resolver,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Use appends middlewares to the global chain. They run after the request
// logger.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBootstrap()
	r.registerUsers()
	r.registerRooms()
	r.registerInvites()
	r.registerMessages()
	r.registerRoles()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			BarTab Chat API
//	@version		0.1.0
//	@description	Multi-tenant chat backend: accounts, rooms, invites, room roles and messages.
//	@description
//	@description				Access tokens are HMAC-signed JWTs carrying only the user id and expiry.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/bartabchat
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, UserService: r.UserService}

	// Credential endpoints - strict rate limit by IP
	r.Mux.Handle("POST /v1/auth/registration",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)

	// Token refresh and profile - lenient rate limit by caller
	token := httpx.Chain(r.withIdentity(h.HandleToken),
		httpx.RateLimitByCaller(r.Limits.Lenient),
	)
	r.Mux.Handle("GET /v1/auth/token", token)
	r.Mux.Handle("POST /v1/auth/token", token)

	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(r.withIdentity(h.HandleMe),
			httpx.RateLimitByCaller(r.Limits.Lenient),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /v1/users/{user_id}",
		httpx.Chain(r.withIdentity(h.HandleGet),
			httpx.RateLimitByCaller(r.Limits.Lenient),
		),
	)

	// Account flags - moderate rate limit (superuser operation)
	r.Mux.Handle("PATCH /v1/users/{user_id}",
		httpx.Chain(r.withIdentity(h.HandleUpdate),
			httpx.RateLimitByCaller(r.Limits.Moderate),
		),
	)
}

func (r *Router) registerRooms() {
	h := &RoomsHandler{RoomService: r.RoomService}

	lenient := httpx.RateLimitByCaller(r.Limits.Lenient)
	moderate := httpx.RateLimitByCaller(r.Limits.Moderate)

	r.Mux.Handle("GET /v1/rooms", httpx.Chain(r.withIdentity(h.HandleList), lenient))
	r.Mux.Handle("POST /v1/rooms", httpx.Chain(r.withIdentity(h.HandleCreate), moderate))
	r.Mux.Handle("GET /v1/rooms/{room_id}", httpx.Chain(r.withIdentity(h.HandleGet), lenient))
	r.Mux.Handle("PATCH /v1/rooms/{room_id}", httpx.Chain(r.withIdentity(h.HandleRename), moderate))
	r.Mux.Handle("DELETE /v1/rooms/{room_id}", httpx.Chain(r.withIdentity(h.HandleDelete), moderate))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	// Membership mutations - moderate rate limit by caller
	r.Mux.Handle("POST /v1/rooms/{room_id}/invite",
		httpx.Chain(r.withIdentity(h.HandleCreate),
			httpx.RateLimitByCaller(r.Limits.Moderate),
		),
	)
	r.Mux.Handle("GET /v1/room-invite/{invite_id}",
		httpx.Chain(r.withIdentity(h.HandleRedeem),
			httpx.RateLimitByCaller(r.Limits.Moderate),
		),
	)
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{MessageService: r.MessageService}

	lenient := httpx.RateLimitByCaller(r.Limits.Lenient)

	r.Mux.Handle("POST /v1/rooms/{room_id}/messages", httpx.Chain(r.withIdentity(h.HandlePost), lenient))
	r.Mux.Handle("GET /v1/rooms/{room_id}/messages", httpx.Chain(r.withIdentity(h.HandleList), lenient))
	r.Mux.Handle("PATCH /v1/messages/{message_id}", httpx.Chain(r.withIdentity(h.HandleEdit), lenient))
	r.Mux.Handle("DELETE /v1/messages/{message_id}", httpx.Chain(r.withIdentity(h.HandleDelete), lenient))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	moderate := httpx.RateLimitByCaller(r.Limits.Moderate)

	r.Mux.Handle("GET /v1/room-roles/{role_id}",
		httpx.Chain(r.withIdentity(h.HandleGet),
			httpx.RateLimitByCaller(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("PATCH /v1/room-roles/{role_id}", httpx.Chain(r.withIdentity(h.HandleUpdate), moderate))
	r.Mux.Handle("DELETE /v1/room-roles/{role_id}", httpx.Chain(r.withIdentity(h.HandleRemove), moderate))
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limit (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}
