package chatsdk

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Session is an authenticated handle on the API. It is safe for concurrent
// use; RefreshToken swaps the token in place.
type Session struct {
	client *SDKClient

	mu    sync.RWMutex
	token string
	user  UserResponse
}

// Token returns the current access token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the user the session was created for.
func (s *Session) User() UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, s.Token(), payload)
}

func (s *Session) call(ctx context.Context, method, path string, payload, target any, status int) error {
	resp, err := s.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, status)
}

func (s *Session) callNoContent(ctx context.Context, method, path string) error {
	resp, err := s.do(ctx, method, path, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RefreshToken asks for a fresh access token and stores it in the session.
func (s *Session) RefreshToken(ctx context.Context) (*TokenResponse, error) {
	var tok TokenResponse
	if err := s.call(ctx, http.MethodPost, "/v1/auth/token", nil, &tok, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = tok.Token
	s.mu.Unlock()
	return &tok, nil
}

// Me returns the caller.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var u UserResponse
	if err := s.call(ctx, http.MethodGet, "/v1/auth/me", nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns any user by id.
func (s *Session) GetUser(ctx context.Context, userID string) (*UserResponse, error) {
	var u UserResponse
	if err := s.call(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser changes account flags. Superuser only.
func (s *Session) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*UserResponse, error) {
	var u UserResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(userID), req, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}
