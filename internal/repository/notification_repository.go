package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// NotificationRepo handles per-recipient notification rows.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts one notification row for a single recipient.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notifications (user_id, type, title, message, related_id) VALUES (?,?,?,?,?)",
		n.UserID, n.Type, n.Title, n.Message, n.RelatedID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns the recipient's most recent notifications,
// newest first, capped at limit.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, title, message, related_id, is_read, created_at
		 FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread reports the recipient's unread notification count.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0",
		userID).Scan(&n)
	return n, err
}

// MarkRead flips one notification to read. The update is scoped to
// the owner, so marking someone else's notification affects nothing;
// zero rows means not found or not yours and maps to sql.ErrNoRows.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var read bool
		// Re-marking an already-read notification is a no-op, not
		// an error.
		if err := r.db.QueryRowContext(ctx,
			"SELECT is_read FROM notifications WHERE id = ? AND user_id = ?",
			id, userID).Scan(&read); err != nil {
			return err
		}
	}
	return nil
}

// MarkAllRead flips every unread notification of the recipient.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	return err
}
