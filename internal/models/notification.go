package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationKindReminder NotificationKind = "reminder"
	NotificationKindOrder    NotificationKind = "order"
	NotificationKindInfo     NotificationKind = "info"
)

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	Link      string           `json:"link,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationEvent is what domain services hand to the feed; the feed
// assigns the id and timestamp on publish.
type NotificationEvent struct {
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
	Link    string           `json:"link,omitempty"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}
