package chatsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeValidation          = "validation_error"
	ErrorCodeInvalidGrant        = "invalid_grant"
	ErrorCodeUnauthenticated     = "unauthenticated"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeGone                = "gone"
	ErrorCodeAlreadyMember       = "already_member"
	ErrorCodeEmailTaken          = "email_taken"
	ErrorCodeAlreadyBootstrapped = "already_bootstrapped"
	ErrorCodeServerError         = "server_error"
)

// APIError is the error envelope written by the server and returned by the
// client for non-2xx responses.
type APIError struct {
	StatusCode  int               `json:"-"`
	Code        string            `json:"error"`
	Description string            `json:"error_description"`
	Detail      map[string]string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError with the same status and code, so client code
// can test errors.Is(err, chatsdk.ErrNotFound).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.StatusCode == e.StatusCode && t.Code == e.Code
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized {
		httpx.SetBearerChallenge(w)
	}
	httpx.WriteJSON(w, e.StatusCode, e)
}

// WithDetail returns a copy of e carrying per-field detail.
func (e *APIError) WithDetail(detail map[string]string) *APIError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithDescription returns a copy of e with a different description.
func (e *APIError) WithDescription(desc string) *APIError {
	cp := *e
	cp.Description = desc
	return &cp
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed",
	}
	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "one or more fields are invalid",
	}
	ErrInvalidGrant = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid credentials",
	}
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "authentication is required",
	}
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "not enough permissions to perform the action",
	}
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}
	ErrGone = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeGone,
		Description: "invite is expired",
	}
	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "email is already in use",
	}
	ErrAlreadyBootstrapped = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyBootstrapped,
		Description: "the service already has users",
	}
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// AlreadyMemberError is the 412 answer to redeeming an invite for a room the
// caller already belongs to. It names the room so clients can navigate there.
type AlreadyMemberError struct {
	ChatRoomID string `json:"chat_room_id"`
}

func (e *AlreadyMemberError) Error() string {
	return fmt.Sprintf("already a member of room %s", e.ChatRoomID)
}

// WriteError writes the 412 response.
func (e *AlreadyMemberError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusPreconditionFailed, map[string]string{
		"error":             ErrorCodeAlreadyMember,
		"error_description": "already in the room",
		"chat_room_id":      e.ChatRoomID,
	})
}

// parseErrorResponse turns a non-2xx response body into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusPreconditionFailed {
		var am struct {
			Error      string `json:"error"`
			ChatRoomID string `json:"chat_room_id"`
		}
		if err := json.Unmarshal(body, &am); err == nil && am.ChatRoomID != "" {
			return &AlreadyMemberError{ChatRoomID: am.ChatRoomID}
		}
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
