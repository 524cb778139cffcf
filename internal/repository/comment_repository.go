package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// CommentRepo handles post comments.
type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// CommentWithAuthor is the listing projection for a post's comments.
type CommentWithAuthor struct {
	ID        uint64      `json:"id"`
	PostID    uint64      `json:"post_id"`
	Content   string      `json:"content"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
}

// ListByPost returns a post's comments, oldest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID uint64) ([]CommentWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.content, c.created_at,
		        u.id, u.first_name, u.last_name, u.role, u.profile_image_url
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = ?
		 ORDER BY c.created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CommentWithAuthor, 0)
	for rows.Next() {
		var c CommentWithAuthor
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Content, &c.CreatedAt,
			&c.Author.ID, &c.Author.FirstName, &c.Author.LastName, &c.Author.Role, &c.Author.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID loads a bare comment row. Returns sql.ErrNoRows when absent.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, post_id, author_id, content, created_at, updated_at
		 FROM comments WHERE id = ?`, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// Create inserts a comment and populates the generated ID.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (post_id, author_id, content) VALUES (?,?,?)",
		c.PostID, c.AuthorID, c.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Delete removes a comment. Ownership is checked by the caller.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	return err
}
