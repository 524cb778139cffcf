package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// MessageRepo handles group chat history.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// MessageWithSender is the chat history projection.
type MessageWithSender struct {
	ID        uint64      `json:"id"`
	GroupID   uint64      `json:"group_id"`
	Content   string      `json:"content"`
	MediaURL  *string     `json:"media_url,omitempty"`
	MediaType *string     `json:"media_type,omitempty"`
	Sender    UserSummary `json:"sender"`
	CreatedAt time.Time   `json:"created_at"`
}

// ListByGroup returns up to limit of the group's most recent
// messages, oldest of the window first so clients can append.
func (r *MessageRepo) ListByGroup(ctx context.Context, groupID uint64, limit int) ([]MessageWithSender, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.group_id, m.content, m.media_url, m.media_type, m.created_at,
		        u.id, u.first_name, u.last_name, u.role, u.profile_image_url
		 FROM (SELECT * FROM messages WHERE group_id = ? ORDER BY created_at DESC LIMIT ?) m
		 JOIN users u ON u.id = m.sender_id
		 ORDER BY m.created_at ASC`, groupID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]MessageWithSender, 0)
	for rows.Next() {
		var m MessageWithSender
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.Content, &m.MediaURL, &m.MediaType, &m.CreatedAt,
			&m.Sender.ID, &m.Sender.FirstName, &m.Sender.LastName, &m.Sender.Role, &m.Sender.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes one message from a group's history. The group id is
// part of the predicate so a message cannot be deleted through
// another group's URL. Returns sql.ErrNoRows when nothing matched.
func (r *MessageRepo) Delete(ctx context.Context, groupID, messageID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM messages WHERE id = ? AND group_id = ?", messageID, groupID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Create appends a message to the group's history and populates the
// generated ID.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (group_id, sender_id, content, media_url, media_type) VALUES (?,?,?,?,?)",
		m.GroupID, m.SenderID, m.Content, m.MediaURL, m.MediaType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}
