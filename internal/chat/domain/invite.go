package domain

import "time"

// RoomInvite grants USER membership to whoever redeems it before ExpiresAt.
// It is not consumed by redemption.
type RoomInvite struct {
	ID          string // UUID v4
	ChatRoomID  string
	CreatedByID string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the invite can no longer be redeemed at now.
func (i RoomInvite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
