package model

import "time"

// Post is a feed entry. GroupID is nil for top-level announcements,
// which are the only posts that trigger a platform-wide notification
// fan-out.
type Post struct {
	ID        uint64    `json:"id"`                 // posts.id
	AuthorID  uint64    `json:"author_id"`          // posts.author_id
	GroupID   *uint64   `json:"group_id,omitempty"` // posts.group_id (nullable)
	Content   string    `json:"content"`            // posts.content
	Media     []string  `json:"media"`              // posts.media (JSON array of URLs)
	Pinned    bool      `json:"pinned"`             // posts.pinned
	CreatedAt time.Time `json:"created_at"`         // posts.created_at
	UpdatedAt time.Time `json:"updated_at"`         // posts.updated_at
}

// Comment belongs to a post and goes away with it.
type Comment struct {
	ID        uint64    `json:"id"`         // comments.id
	PostID    uint64    `json:"post_id"`    // comments.post_id
	AuthorID  uint64    `json:"author_id"`  // comments.author_id
	Content   string    `json:"content"`    // comments.content
	CreatedAt time.Time `json:"created_at"` // comments.created_at
	UpdatedAt time.Time `json:"updated_at"` // comments.updated_at
}

// Reaction is a like on a post, unique per (post, user).
type Reaction struct {
	ID        uint64    `json:"id"`         // reactions.id
	PostID    uint64    `json:"post_id"`    // reactions.post_id
	UserID    uint64    `json:"user_id"`    // reactions.user_id
	Type      string    `json:"type"`       // reactions.type
	CreatedAt time.Time `json:"created_at"` // reactions.created_at
}
