package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// BadgeRepo handles badge definitions and awards.
type BadgeRepo struct {
	db *sql.DB
}

func NewBadgeRepo(db *sql.DB) *BadgeRepo { return &BadgeRepo{db: db} }

// List returns every badge definition, alphabetically.
func (r *BadgeRepo) List(ctx context.Context) ([]model.Badge, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, icon_url, color, created_at FROM badges ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Badge, 0)
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.IconURL, &b.Color, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create defines a new badge and populates the generated ID.
func (r *BadgeRepo) Create(ctx context.Context, b *model.Badge) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO badges (name, description, icon_url, color) VALUES (?,?,?,?)",
		b.Name, b.Description, b.IconURL, b.Color)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Award grants a badge to a user. Awarding the same badge twice
// returns ErrConflict.
func (r *BadgeRepo) Award(ctx context.Context, userID, badgeID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_badges (user_id, badge_id) VALUES (?,?)", userID, badgeID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// EarnedBadge is a badge joined with when the user earned it.
type EarnedBadge struct {
	Badge    model.Badge `json:"badge"`
	EarnedAt time.Time   `json:"earned_at"`
}

// ListByUser returns the badges a user has earned, newest first.
func (r *BadgeRepo) ListByUser(ctx context.Context, userID uint64) ([]EarnedBadge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.name, b.description, b.icon_url, b.color, b.created_at, ub.earned_at
		 FROM user_badges ub
		 JOIN badges b ON b.id = ub.badge_id
		 WHERE ub.user_id = ?
		 ORDER BY ub.earned_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]EarnedBadge, 0)
	for rows.Next() {
		var e EarnedBadge
		if err := rows.Scan(
			&e.Badge.ID, &e.Badge.Name, &e.Badge.Description, &e.Badge.IconURL, &e.Badge.Color,
			&e.Badge.CreatedAt, &e.EarnedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
