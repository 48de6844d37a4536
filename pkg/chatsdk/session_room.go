package chatsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRooms returns the rooms the caller belongs to.
func (s *Session) ListRooms(ctx context.Context) ([]RoomResponse, error) {
	var rooms []RoomResponse
	if err := s.call(ctx, http.MethodGet, "/v1/rooms", nil, &rooms, http.StatusOK); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateRoom creates a room with the caller as its admin.
func (s *Session) CreateRoom(ctx context.Context, req RoomRequest) (*RoomResponse, error) {
	var room RoomResponse
	if err := s.call(ctx, http.MethodPost, "/v1/rooms", req, &room, http.StatusCreated); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoom returns a room the caller belongs to.
func (s *Session) GetRoom(ctx context.Context, roomID string) (*RoomResponse, error) {
	var room RoomResponse
	if err := s.call(ctx, http.MethodGet, roomPath(roomID), nil, &room, http.StatusOK); err != nil {
		return nil, err
	}
	return &room, nil
}

// RenameRoom requires admin or mod.
func (s *Session) RenameRoom(ctx context.Context, roomID string, req RoomRequest) (*RoomResponse, error) {
	var room RoomResponse
	if err := s.call(ctx, http.MethodPatch, roomPath(roomID), req, &room, http.StatusOK); err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteRoom requires admin.
func (s *Session) DeleteRoom(ctx context.Context, roomID string) error {
	return s.callNoContent(ctx, http.MethodDelete, roomPath(roomID))
}

// CreateInvite returns a shareable invite id for the room. Requires admin or mod.
func (s *Session) CreateInvite(ctx context.Context, roomID string) (*InviteResponse, error) {
	var inv InviteResponse
	if err := s.call(ctx, http.MethodPost, roomPath(roomID)+"/invite", nil, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RedeemInvite joins the invite's room. A repeat redemption fails with
// *AlreadyMemberError.
func (s *Session) RedeemInvite(ctx context.Context, inviteID string) (*RoomResponse, error) {
	var room RoomResponse
	if err := s.call(ctx, http.MethodGet, "/v1/room-invite/"+url.PathEscape(inviteID), nil, &room, http.StatusCreated); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRole returns a membership in a room the caller belongs to.
func (s *Session) GetRole(ctx context.Context, roleID string) (*RoleResponse, error) {
	var role RoleResponse
	if err := s.call(ctx, http.MethodGet, rolePath(roleID), nil, &role, http.StatusOK); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole changes a member's tier. Requires admin.
func (s *Session) UpdateRole(ctx context.Context, roleID string, req UpdateRoleRequest) (*RoleResponse, error) {
	var role RoleResponse
	if err := s.call(ctx, http.MethodPatch, rolePath(roleID), req, &role, http.StatusOK); err != nil {
		return nil, err
	}
	return &role, nil
}

// RemoveRole removes a membership: the caller's own, or anyone's when the
// caller is admin or mod.
func (s *Session) RemoveRole(ctx context.Context, roleID string) error {
	return s.callNoContent(ctx, http.MethodDelete, rolePath(roleID))
}

func roomPath(roomID string) string { return "/v1/rooms/" + url.PathEscape(roomID) }
func rolePath(roleID string) string { return "/v1/room-roles/" + url.PathEscape(roleID) }
