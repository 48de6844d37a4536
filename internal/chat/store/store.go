package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx can hand out the same
// repositories bound to the transaction.
type Store interface {
	Users() Users
	Rooms() Rooms
	RoomRoles() RoomRoles
	Invites() Invites
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only tx may be used; the outer Store
	// can block on a single-connection driver.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are refused.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the stored (lower-cased) email exactly.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserFlags sets is_active and is_superuser and bumps updated_at.
	UpdateUserFlags(ctx context.Context, id string, isActive, isSuperuser bool, at time.Time) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Rooms interface {
	CreateRoom(ctx context.Context, r domain.ChatRoom) error
	GetRoomByID(ctx context.Context, id string) (domain.ChatRoom, error)

	// ListRoomsForUser returns the rooms userID holds a role in, oldest first.
	ListRoomsForUser(ctx context.Context, userID string) ([]domain.ChatRoom, error)

	RenameRoom(ctx context.Context, id, name string, at time.Time) error

	// DeleteRoom cascades to roles, invites and messages.
	DeleteRoom(ctx context.Context, id string) error
}

type RoomRoles interface {
	// CreateRole returns ErrAlreadyExists when the user already holds a role
	// in the room.
	CreateRole(ctx context.Context, r domain.RoomRole) error

	GetRoleByID(ctx context.Context, id string) (domain.RoomRole, error)

	// GetRoleForUser returns the caller's membership in a room.
	GetRoleForUser(ctx context.Context, roomID, userID string) (domain.RoomRole, error)

	// ListRolesByRoom returns all memberships of a room, oldest first.
	ListRolesByRoom(ctx context.Context, roomID string) ([]domain.RoomRole, error)

	UpdateRoleTier(ctx context.Context, id string, role domain.Role, at time.Time) error
	DeleteRole(ctx context.Context, id string) error
}

type Invites interface {
	CreateInvite(ctx context.Context, inv domain.RoomInvite) error
	GetInviteByID(ctx context.Context, id string) (domain.RoomInvite, error)

	// FindReusableInvite returns the room's invite that lives longest, provided
	// it expires strictly after notBefore.
	FindReusableInvite(ctx context.Context, roomID string, notBefore time.Time) (domain.RoomInvite, error)

	// DeleteInvitesExpiredBefore purges invites whose expiry is before cutoff
	// and reports how many were removed.
	DeleteInvitesExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Messages interface {
	CreateMessage(ctx context.Context, m domain.Message) error
	GetMessageByID(ctx context.Context, id string) (domain.Message, error)

	// ListMessages returns one page and the total number of matching rows.
	ListMessages(ctx context.Context, q domain.MessageQuery) ([]domain.Message, int, error)

	UpdateMessageContent(ctx context.Context, id, content string, at time.Time) error
	DeleteMessage(ctx context.Context, id string) error
}
