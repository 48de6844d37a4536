package domain

import "time"

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system_announcement"
)

type Message struct {
	ID          string
	ChatRoomID  string
	CreatedByID string // empty once the author is deleted
	Type        MessageType
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MessageQuery selects a page of a room's messages, newest first. A non-empty
// Search restricts results to text messages containing it, case-insensitively.
type MessageQuery struct {
	ChatRoomID string
	Search     string
	Limit      int
	Offset     int
}
