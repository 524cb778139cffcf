package model

import "time"

// Notification types written by the fan-out service.
const (
	NotificationTypePost    = "post"
	NotificationTypeEvent   = "event"
	NotificationTypeMessage = "message"
)

// Notification is one row in the `notifications` table. Rows are
// created only as a side effect of content creation, addressed to a
// single recipient. The read flag moves unread -> read exactly once
// and never back.
type Notification struct {
	ID        uint64    `json:"id"`                   // notifications.id
	UserID    uint64    `json:"user_id"`              // notifications.user_id (recipient)
	Type      string    `json:"type"`                 // notifications.type
	Title     string    `json:"title"`                // notifications.title
	Message   string    `json:"message"`              // notifications.message
	RelatedID *uint64   `json:"related_id,omitempty"` // notifications.related_id (nullable)
	Read      bool      `json:"read"`                 // notifications.is_read
	CreatedAt time.Time `json:"created_at"`           // notifications.created_at
}
