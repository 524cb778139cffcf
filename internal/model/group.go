package model

import "time"

// Group kinds stored in groups.type.
const (
	GroupTypeCourse = "course"
	GroupTypeClub   = "club"
)

// Group is a course or club. Deleting a group cascades to its
// members, posts and messages.
type Group struct {
	ID            uint64    `json:"id"`                        // groups.id
	Name          string    `json:"name"`                      // groups.name
	Description   *string   `json:"description,omitempty"`     // groups.description (nullable)
	Type          string    `json:"type"`                      // groups.type
	Grade         *string   `json:"grade,omitempty"`           // groups.grade (nullable)
	CoverImageURL *string   `json:"cover_image_url,omitempty"` // groups.cover_image_url (nullable)
	CreatedBy     *uint64   `json:"created_by,omitempty"`      // groups.created_by (nullable)
	CreatedAt     time.Time `json:"created_at"`                // groups.created_at
	UpdatedAt     time.Time `json:"updated_at"`                // groups.updated_at
}

// GroupMember joins a user into a group, unique per (group, user).
// The creator joins with role "admin"; everyone else with "member".
type GroupMember struct {
	ID       uint64    `json:"id"`        // group_members.id
	GroupID  uint64    `json:"group_id"`  // group_members.group_id
	UserID   uint64    `json:"user_id"`   // group_members.user_id
	Role     string    `json:"role"`      // group_members.role
	JoinedAt time.Time `json:"joined_at"` // group_members.joined_at
}

// Message is a chat message inside a group, optionally carrying an
// uploaded media attachment.
type Message struct {
	ID        uint64    `json:"id"`                   // messages.id
	GroupID   uint64    `json:"group_id"`             // messages.group_id
	SenderID  uint64    `json:"sender_id"`            // messages.sender_id
	Content   string    `json:"content"`              // messages.content
	MediaURL  *string   `json:"media_url,omitempty"`  // messages.media_url (nullable)
	MediaType *string   `json:"media_type,omitempty"` // messages.media_type: voice, image or document
	CreatedAt time.Time `json:"created_at"`           // messages.created_at
}
