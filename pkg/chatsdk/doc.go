// Package chatsdk is the Go client for the chat API, and the home of the
// request/response types and error envelope the server writes.
//
// Unauthenticated calls (registration, login, bootstrap, health) live on
// SDKClient. A Session wraps an access token and exposes the room, message,
// invite and role endpoints:
//
//	c := chatsdk.NewSDKClient("http://localhost:8080")
//	s, err := c.Login(ctx, chatsdk.LoginRequest{Email: "a@example.com", Password: "secret1"})
//	if err != nil {
//		return err
//	}
//	room, err := s.CreateRoom(ctx, chatsdk.RoomRequest{Name: "general"})
//
// Errors returned by the server are *APIError values (or *AlreadyMemberError
// for a repeated invite redemption) and can be inspected with errors.As.
package chatsdk
