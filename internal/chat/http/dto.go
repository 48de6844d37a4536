package http

import (
	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
)

const tokenTypeBearer = "bearer"

func toUserResponse(u domain.User) chatsdk.UserResponse {
	return chatsdk.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

func toTokenResponse(t jwtx.Token) chatsdk.TokenResponse {
	return chatsdk.TokenResponse{
		Token:     t.Value,
		TokenType: tokenTypeBearer,
		ExpiresAt: t.ExpiresAt.Unix(),
	}
}

func toAuthResponse(u domain.User, t jwtx.Token) chatsdk.AuthResponse {
	return chatsdk.AuthResponse{
		User:        toUserResponse(u),
		AccessToken: toTokenResponse(t),
	}
}

func toRoleResponse(r domain.RoomRole) chatsdk.RoleResponse {
	return chatsdk.RoleResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		ChatRoomID: r.ChatRoomID,
		Role:       string(r.Role),
	}
}

func toRoomResponse(room domain.RoomWithRoles) chatsdk.RoomResponse {
	roles := make([]chatsdk.RoleResponse, 0, len(room.Roles))
	for _, r := range room.Roles {
		roles = append(roles, toRoleResponse(r))
	}
	return chatsdk.RoomResponse{
		ID:    room.ID,
		Name:  room.Name,
		Roles: roles,
	}
}

func toMessageResponse(m domain.Message) chatsdk.MessageResponse {
	return chatsdk.MessageResponse{
		ID:          m.ID,
		ChatRoomID:  m.ChatRoomID,
		CreatedByID: m.CreatedByID,
		Type:        string(m.Type),
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMessagePage(p service.MessagePage) chatsdk.MessagePage {
	results := make([]chatsdk.MessageResponse, 0, len(p.Results))
	for _, m := range p.Results {
		results = append(results, toMessageResponse(m))
	}
	return chatsdk.MessagePage{
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
		Next:     p.Next,
		Results:  results,
	}
}
