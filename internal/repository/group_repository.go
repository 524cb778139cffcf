package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// GroupRepo handles groups and their membership roster.
type GroupRepo struct {
	db *sql.DB
}

func NewGroupRepo(db *sql.DB) *GroupRepo { return &GroupRepo{db: db} }

// GroupWithCount is the listing projection: group row, member count
// and whether the requesting user belongs to it.
type GroupWithCount struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Type          string    `json:"type"`
	Grade         *string   `json:"grade,omitempty"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	MemberCount   int       `json:"member_count"`
	Joined        bool      `json:"joined"`
	CreatedAt     time.Time `json:"created_at"`
}

const groupSelect = "SELECT g.id, g.name, g.description, g.type, g.grade, g.cover_image_url, g.created_at,\n" +
	"       (SELECT COUNT(*) FROM group_members m WHERE m.group_id = g.id),\n" +
	"       EXISTS(SELECT 1 FROM group_members m WHERE m.group_id = g.id AND m.user_id = ?)\n" +
	"FROM `groups` g"

// List returns every group, alphabetically. viewerID drives the
// joined flag.
func (r *GroupRepo) List(ctx context.Context, viewerID uint64) ([]GroupWithCount, error) {
	return r.queryGroups(ctx, groupSelect+" ORDER BY g.name ASC", viewerID)
}

// ListByUser returns the groups the given user belongs to.
func (r *GroupRepo) ListByUser(ctx context.Context, userID uint64) ([]GroupWithCount, error) {
	q := groupSelect + ` JOIN group_members gm ON gm.group_id = g.id AND gm.user_id = ?
	ORDER BY g.name ASC`
	return r.queryGroups(ctx, q, userID, userID)
}

func (r *GroupRepo) queryGroups(ctx context.Context, query string, args ...interface{}) ([]GroupWithCount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]GroupWithCount, 0)
	for rows.Next() {
		var g GroupWithCount
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.Type, &g.Grade, &g.CoverImageURL, &g.CreatedAt,
			&g.MemberCount, &g.Joined,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID loads a bare group row. Returns sql.ErrNoRows when absent.
func (r *GroupRepo) GetByID(ctx context.Context, id uint64) (model.Group, error) {
	var g model.Group
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, type, grade, cover_image_url, created_by, created_at, updated_at FROM `groups` WHERE id = ?",
		id).Scan(
		&g.ID, &g.Name, &g.Description, &g.Type, &g.Grade, &g.CoverImageURL, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return model.Group{}, err
	}
	return g, nil
}

// Create inserts a group and enrolls the creator as its admin member,
// both in one transaction.
func (r *GroupRepo) Create(ctx context.Context, g *model.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO `groups` (name, description, type, grade, cover_image_url, created_by) VALUES (?,?,?,?,?,?)",
		g.Name, g.Description, g.Type, g.Grade, g.CoverImageURL, g.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	if g.CreatedBy != nil {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, role) VALUES (?,?, 'admin')",
			g.ID, *g.CreatedBy); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes a group; members, posts and messages cascade.
func (r *GroupRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM `groups` WHERE id = ?", id)
	return err
}

// AddMember enrolls a user. Joining twice returns ErrConflict.
func (r *GroupRepo) AddMember(ctx context.Context, groupID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, role) VALUES (?,?, 'member')",
		groupID, userID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	return nil
}

// RemoveMember drops a user from the roster. Leaving a group the
// user is not in is a no-op.
func (r *GroupRepo) RemoveMember(ctx context.Context, groupID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?", groupID, userID)
	return err
}

// IsMember reports whether the user belongs to the group.
func (r *GroupRepo) IsMember(ctx context.Context, groupID, userID uint64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?)",
		groupID, userID).Scan(&ok)
	return ok, err
}

// GroupMemberInfo is the roster projection.
type GroupMemberInfo struct {
	User     UserSummary `json:"user"`
	Role     string      `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// Members returns the group roster, admins first.
func (r *GroupRepo) Members(ctx context.Context, groupID uint64) ([]GroupMemberInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.role, u.profile_image_url,
		        gm.role, gm.joined_at
		 FROM group_members gm
		 JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = ?
		 ORDER BY gm.role ASC, gm.joined_at ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]GroupMemberInfo, 0)
	for rows.Next() {
		var m GroupMemberInfo
		if err := rows.Scan(
			&m.User.ID, &m.User.FirstName, &m.User.LastName, &m.User.Role, &m.User.ProfileImageURL,
			&m.Role, &m.JoinedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MemberIDs returns the ids of every member, for chat fan-out.
func (r *GroupRepo) MemberIDs(ctx context.Context, groupID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ?", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
