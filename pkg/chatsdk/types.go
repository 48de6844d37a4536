package chatsdk

import "time"

// Room role tiers.
const (
	RoleAdmin     = "admin"
	RoleModerator = "mod"
	RoleUser      = "user"
)

// Message types.
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system_announcement"
)

// ============================================================================
// Users & tokens
// ============================================================================

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// TokenResponse is an access token with its expiry in unix seconds.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt int64  `json:"expires_at"`
}

// AuthResponse is returned by registration, login and bootstrap.
type AuthResponse struct {
	User        UserResponse  `json:"user"`
	AccessToken TokenResponse `json:"access_token"`
}

// RegistrationRequest creates a new account.
type RegistrationRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for an access token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BootstrapRequest creates the first superuser.
type BootstrapRequest struct {
	Token    string `json:"token,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateUserRequest toggles account flags. Omitted fields are left alone.
type UpdateUserRequest struct {
	IsActive    *bool `json:"is_active,omitempty"`
	IsSuperuser *bool `json:"is_superuser,omitempty"`
}

// ============================================================================
// Rooms, roles & invites
// ============================================================================

// RoleResponse is one membership row.
type RoleResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	ChatRoomID string `json:"chat_room_id"`
	Role       string `json:"role"`
}

// RoomResponse is a room together with all of its memberships.
type RoomResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Roles []RoleResponse `json:"roles"`
}

// RoomRequest creates or renames a room.
type RoomRequest struct {
	Name string `json:"name"`
}

// UpdateRoleRequest changes a member's tier.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// InviteResponse carries the invite id to share.
type InviteResponse struct {
	ID string `json:"id"`
}

// ============================================================================
// Messages
// ============================================================================

// MessageRequest posts or edits a text message.
type MessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse is a message as returned by the API.
type MessageResponse struct {
	ID          string    `json:"id"`
	ChatRoomID  string    `json:"chat_room_id"`
	CreatedByID string    `json:"created_by_id,omitempty"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessagePage is one page of a room's messages, newest first. Next is the
// following page number, or nil on the last page.
type MessagePage struct {
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Next     *int              `json:"next"`
	Results  []MessageResponse `json:"results"`
}

// ListMessagesOptions filters and pages ListMessages. Zero values use the
// server defaults.
type ListMessagesOptions struct {
	Page     int
	PageSize int
	Search   string
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
