package chatsdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/stretchr/testify/require"
)

func TestErrorsRoundTripThroughClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/rooms/{room_id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		chatsdk.ErrNotFound.WriteError(w)
	})
	mux.HandleFunc("GET /v1/room-invite/{invite_id}", func(w http.ResponseWriter, r *http.Request) {
		(&chatsdk.AlreadyMemberError{ChatRoomID: "room-1"}).WriteError(w)
	})
	mux.HandleFunc("GET /v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		chatsdk.ErrUnauthenticated.WriteError(w)
	})
	mux.HandleFunc("DELETE /v1/rooms/{room_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := chatsdk.NewSDKClient(srv.URL + "/").NewSession("tok", chatsdk.UserResponse{ID: "u1"})
	ctx := context.Background()

	_, err := s.GetRoom(ctx, "missing")
	require.ErrorIs(t, err, chatsdk.ErrNotFound)

	_, err = s.RedeemInvite(ctx, "inv")
	var am *chatsdk.AlreadyMemberError
	require.True(t, errors.As(err, &am))
	require.Equal(t, "room-1", am.ChatRoomID)

	_, err = s.Me(ctx)
	var apiErr *chatsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, chatsdk.ErrorCodeUnauthenticated, apiErr.Code)

	err = s.DeleteRoom(ctx, "r")
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestWriteErrorSetsChallengeOn401(t *testing.T) {
	rec := httptest.NewRecorder()
	chatsdk.ErrUnauthenticated.WriteError(rec)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	require.JSONEq(t, `{"error":"unauthenticated","error_description":"authentication is required"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	chatsdk.ErrValidation.WithDetail(map[string]string{"email": "must be a valid email address"}).WriteError(rec)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"detail":{"email"`)
}
