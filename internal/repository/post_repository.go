package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// PostRepo handles feed and group posts plus their like toggles.
type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{db: db} }

// PostWithAuthor is the listing projection: post row, author summary,
// aggregate counts and whether the requesting user already liked it.
type PostWithAuthor struct {
	ID           uint64      `json:"id"`
	GroupID      *uint64     `json:"group_id,omitempty"`
	Content      string      `json:"content"`
	Media        []string    `json:"media"`
	Pinned       bool        `json:"pinned"`
	Author       UserSummary `json:"author"`
	CommentCount int         `json:"comment_count"`
	LikeCount    int         `json:"like_count"`
	Liked        bool        `json:"liked"`
	CreatedAt    time.Time   `json:"created_at"`
}

const postSelect = `SELECT p.id, p.group_id, p.content, p.media, p.pinned, p.created_at,
	       u.id, u.first_name, u.last_name, u.role, u.profile_image_url,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	       (SELECT COUNT(*) FROM reactions r WHERE r.post_id = p.id),
	       EXISTS(SELECT 1 FROM reactions r WHERE r.post_id = p.id AND r.user_id = ?)
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// ListFeed returns the top-level feed: posts with no group, pinned
// first, then newest first. viewerID drives the liked flag.
func (r *PostRepo) ListFeed(ctx context.Context, viewerID uint64) ([]PostWithAuthor, error) {
	q := postSelect + " WHERE p.group_id IS NULL ORDER BY p.pinned DESC, p.created_at DESC"
	return r.queryPosts(ctx, q, viewerID)
}

// ListByGroup returns a group's posts, newest first.
func (r *PostRepo) ListByGroup(ctx context.Context, viewerID, groupID uint64) ([]PostWithAuthor, error) {
	q := postSelect + " WHERE p.group_id = ? ORDER BY p.created_at DESC"
	return r.queryPosts(ctx, q, viewerID, groupID)
}

// ListByUser returns a user's posts across the feed and groups.
func (r *PostRepo) ListByUser(ctx context.Context, viewerID, authorID uint64) ([]PostWithAuthor, error) {
	q := postSelect + " WHERE p.author_id = ? ORDER BY p.created_at DESC"
	return r.queryPosts(ctx, q, viewerID, authorID)
}

func (r *PostRepo) queryPosts(ctx context.Context, query string, args ...interface{}) ([]PostWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PostWithAuthor, 0)
	for rows.Next() {
		var (
			p     PostWithAuthor
			media sql.NullString
		)
		if err := rows.Scan(
			&p.ID, &p.GroupID, &p.Content, &media, &p.Pinned, &p.CreatedAt,
			&p.Author.ID, &p.Author.FirstName, &p.Author.LastName, &p.Author.Role, &p.Author.ProfileImageURL,
			&p.CommentCount, &p.LikeCount, &p.Liked,
		); err != nil {
			return nil, err
		}
		p.Media = decodeMedia(media)
		out = append(out, p)
	}
	return out, rows.Err()
}

func decodeMedia(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var media []string
	if err := json.Unmarshal([]byte(raw.String), &media); err != nil {
		return []string{}
	}
	return media
}

// GetByID loads a bare post row. Returns sql.ErrNoRows when absent.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var (
		p     model.Post
		media sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, group_id, content, media, pinned, created_at, updated_at
		 FROM posts WHERE id = ?`, id).Scan(
		&p.ID, &p.AuthorID, &p.GroupID, &p.Content, &media, &p.Pinned, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, err
	}
	p.Media = decodeMedia(media)
	return p, nil
}

// Create inserts a post and populates the generated ID.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	media, err := json.Marshal(p.Media)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO posts (author_id, group_id, content, media) VALUES (?,?,?,?)",
		p.AuthorID, p.GroupID, p.Content, string(media))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// UpdateContent replaces a post's text. Ownership is checked by the
// caller.
func (r *PostRepo) UpdateContent(ctx context.Context, id uint64, content string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE posts SET content = ? WHERE id = ?", content, id)
	return err
}

// SetPinned flips a post's pinned flag. Admin only, enforced upstream.
func (r *PostRepo) SetPinned(ctx context.Context, id uint64, pinned bool) error {
	_, err := r.db.ExecContext(ctx, "UPDATE posts SET pinned = ? WHERE id = ?", pinned, id)
	return err
}

// Delete removes a post; comments and reactions cascade with it.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	return err
}

// ToggleLike adds the user's like if missing and removes it if
// present, returning the resulting liked state. The delete-then-check
// runs in a transaction so a double tap settles on one state.
func (r *PostRepo) ToggleLike(ctx context.Context, postID, userID uint64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM reactions WHERE post_id = ? AND user_id = ?", postID, userID)
	if err != nil {
		return false, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	liked := false
	if removed == 0 {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO reactions (post_id, user_id, type) VALUES (?,?, 'like')",
			postID, userID); err != nil {
			return false, err
		}
		liked = true
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return liked, nil
}

// CountAll reports the total number of posts, for the stats endpoints.
func (r *PostRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&n)
	return n, err
}
