package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/stretchr/testify/require"
)

func TestRoleTiers(t *testing.T) {
	require.True(t, domain.RoleAdmin.Elevated())
	require.True(t, domain.RoleModerator.Elevated())
	require.False(t, domain.RoleUser.Elevated())

	require.True(t, domain.RoleUser.Valid())
	require.False(t, domain.Role("owner").Valid())
}

func TestInviteExpiredAtBoundary(t *testing.T) {
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	inv := domain.RoomInvite{ExpiresAt: exp}

	require.False(t, inv.Expired(exp.Add(-time.Nanosecond)))
	require.True(t, inv.Expired(exp))
	require.True(t, inv.Expired(exp.Add(time.Second)))
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Bob", domain.User{Name: "Bob", Email: "b@example.com"}.DisplayName())
	require.Equal(t, "b@example.com", domain.User{Email: "b@example.com"}.DisplayName())
}
