package domain

import (
	"slices"
	"time"
)

type ChatRoom struct {
	ID          string
	Name        string
	CreatedByID string // empty once the creator is deleted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role is a membership tier within a room.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "mod"
	RoleUser      Role = "user"
)

// ElevatedRoles may manage other members of a room.
var ElevatedRoles = []Role{RoleAdmin, RoleModerator}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

func (r Role) Elevated() bool {
	return slices.Contains(ElevatedRoles, r)
}

// RoomRole is a user's membership in a room. At most one exists per
// (ChatRoomID, UserID).
type RoomRole struct {
	ID         string
	ChatRoomID string
	UserID     string
	Role       Role
	InviteID   string // set when the membership came from an invite
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoomWithRoles is a room together with its full membership list.
type RoomWithRoles struct {
	ChatRoom
	Roles []RoomRole
}
