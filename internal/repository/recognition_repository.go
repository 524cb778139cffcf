package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// RecognitionRepo handles public shout-outs between users.
type RecognitionRepo struct {
	db *sql.DB
}

func NewRecognitionRepo(db *sql.DB) *RecognitionRepo { return &RecognitionRepo{db: db} }

// RecognitionWithUsers is the wall projection: the shout-out plus
// both parties.
type RecognitionWithUsers struct {
	ID        uint64      `json:"id"`
	Content   string      `json:"content"`
	ImageURL  *string     `json:"image_url,omitempty"`
	Author    UserSummary `json:"author"`
	Recipient UserSummary `json:"recipient"`
	CreatedAt time.Time   `json:"created_at"`
}

// List returns the recognition wall, newest first.
func (r *RecognitionRepo) List(ctx context.Context) ([]RecognitionWithUsers, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rc.id, rc.content, rc.image_url, rc.created_at,
		        a.id, a.first_name, a.last_name, a.role, a.profile_image_url,
		        b.id, b.first_name, b.last_name, b.role, b.profile_image_url
		 FROM recognitions rc
		 JOIN users a ON a.id = rc.created_by
		 JOIN users b ON b.id = rc.recipient_id
		 ORDER BY rc.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RecognitionWithUsers, 0)
	for rows.Next() {
		var rec RecognitionWithUsers
		if err := rows.Scan(
			&rec.ID, &rec.Content, &rec.ImageURL, &rec.CreatedAt,
			&rec.Author.ID, &rec.Author.FirstName, &rec.Author.LastName, &rec.Author.Role, &rec.Author.ProfileImageURL,
			&rec.Recipient.ID, &rec.Recipient.FirstName, &rec.Recipient.LastName, &rec.Recipient.Role, &rec.Recipient.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetByID loads a bare recognition row. Returns sql.ErrNoRows when
// absent.
func (r *RecognitionRepo) GetByID(ctx context.Context, id uint64) (model.Recognition, error) {
	var rec model.Recognition
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_by, recipient_id, content, image_url, created_at, updated_at
		 FROM recognitions WHERE id = ?`, id).Scan(
		&rec.ID, &rec.CreatedBy, &rec.RecipientID, &rec.Content, &rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return model.Recognition{}, err
	}
	return rec, nil
}

// Create posts a shout-out and populates the generated ID.
func (r *RecognitionRepo) Create(ctx context.Context, rec *model.Recognition) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO recognitions (created_by, recipient_id, content, image_url) VALUES (?,?,?,?)",
		rec.CreatedBy, rec.RecipientID, rec.Content, rec.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// Delete removes a shout-out. Ownership is checked by the caller.
func (r *RecognitionRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM recognitions WHERE id = ?", id)
	return err
}
