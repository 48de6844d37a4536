package access

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient room role")
	ErrNotFound        = errors.New("not found")
)

// Check is a single authorization gate. It returns nil to allow the request.
type Check func(ctx context.Context, id Identity) error

// Enforce runs checks in order and returns the first failure.
func Enforce(ctx context.Context, id Identity, checks ...Check) error {
	for _, check := range checks {
		if err := check(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Authenticated rejects the anonymous identity.
func Authenticated(_ context.Context, id Identity) error {
	if !id.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// Superuser rejects callers without the superuser flag.
func Superuser(_ context.Context, id Identity) error {
	if !id.IsSuperuser() {
		return ErrForbidden
	}
	return nil
}

// RoleLookup is the slice of the room role repository the policies need.
type RoleLookup interface {
	GetRoleForUser(ctx context.Context, roomID, userID string) (domain.RoomRole, error)
}

// RoomRole requires the caller to hold a role in roomID. Non-members get
// ErrNotFound so a room's existence is not revealed. With allowed empty any
// role passes, otherwise a role outside allowed gets ErrForbidden.
func RoomRole(lookup RoleLookup, roomID string, allowed ...domain.Role) Check {
	return func(ctx context.Context, id Identity) error {
		_, err := Membership(ctx, lookup, id, roomID, allowed...)
		return err
	}
}

// Membership applies the RoomRole rules and returns the caller's role row.
func Membership(ctx context.Context, lookup RoleLookup, id Identity, roomID string, allowed ...domain.Role) (domain.RoomRole, error) {
	if !id.Authenticated() {
		return domain.RoomRole{}, ErrUnauthenticated
	}

	role, err := lookup.GetRoleForUser(ctx, roomID, id.UserID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RoomRole{}, ErrNotFound
		}
		return domain.RoomRole{}, fmt.Errorf("lookup room role: %w", err)
	}

	if len(allowed) > 0 && !slices.Contains(allowed, role.Role) {
		return role, ErrForbidden
	}
	return role, nil
}

// SelfOrElevated allows acting on target when the caller owns it, or when
// the caller holds an elevated role in the target's room. Either alone is
// enough. A caller without membership in that room gets ErrNotFound.
func SelfOrElevated(lookup RoleLookup, target domain.RoomRole) Check {
	return func(ctx context.Context, id Identity) error {
		actor, err := Membership(ctx, lookup, id, target.ChatRoomID)
		if err != nil {
			return err
		}
		if !CanActOn(actor, target) {
			return ErrForbidden
		}
		return nil
	}
}

// CanActOn reports whether the holder of actor may manage target.
func CanActOn(actor, target domain.RoomRole) bool {
	if actor.UserID == target.UserID && actor.ChatRoomID == target.ChatRoomID {
		return true
	}
	return actor.ChatRoomID == target.ChatRoomID && actor.Role.Elevated()
}
