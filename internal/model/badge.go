package model

import "time"

// Badge is a recognition award defined by teachers or admins.
type Badge struct {
	ID          uint64    `json:"id"`                    // badges.id
	Name        string    `json:"name"`                  // badges.name
	Description *string   `json:"description,omitempty"` // badges.description (nullable)
	IconURL     *string   `json:"icon_url,omitempty"`    // badges.icon_url (nullable)
	Color       *string   `json:"color,omitempty"`       // badges.color (nullable)
	CreatedAt   time.Time `json:"created_at"`            // badges.created_at
}

// UserBadge records a badge earned by a user, unique per (user, badge).
type UserBadge struct {
	ID       uint64    `json:"id"`        // user_badges.id
	UserID   uint64    `json:"user_id"`   // user_badges.user_id
	BadgeID  uint64    `json:"badge_id"`  // user_badges.badge_id
	EarnedAt time.Time `json:"earned_at"` // user_badges.earned_at
}

// Recognition is a public shout-out from one user to another.
type Recognition struct {
	ID          uint64    `json:"id"`                  // recognitions.id
	CreatedBy   uint64    `json:"created_by"`          // recognitions.created_by
	RecipientID uint64    `json:"recipient_id"`        // recognitions.recipient_id
	Content     string    `json:"content"`             // recognitions.content
	ImageURL    *string   `json:"image_url,omitempty"` // recognitions.image_url (nullable)
	CreatedAt   time.Time `json:"created_at"`          // recognitions.created_at
	UpdatedAt   time.Time `json:"updated_at"`          // recognitions.updated_at
}
