package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// FileRepo handles the shared file library.
type FileRepo struct {
	db *sql.DB
}

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{db: db} }

// FileWithUploader is the library listing projection.
type FileWithUploader struct {
	ID            uint64      `json:"id"`
	FileName      string      `json:"file_name"`
	FileURL       string      `json:"file_url"`
	FileType      string      `json:"file_type"`
	FileSize      int64       `json:"file_size"`
	Subject       *string     `json:"subject,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Visibility    string      `json:"visibility"`
	GroupID       *uint64     `json:"group_id,omitempty"`
	DownloadCount int         `json:"download_count"`
	Approved      bool        `json:"approved"`
	Uploader      UserSummary `json:"uploader"`
	CreatedAt     time.Time   `json:"created_at"`
}

const fileSelect = `SELECT f.id, f.file_name, f.file_url, f.file_type, f.file_size, f.subject,
	       f.description, f.visibility, f.group_id, f.download_count, f.approved, f.created_at,
	       u.id, u.first_name, u.last_name, u.role, u.profile_image_url
	FROM files f
	JOIN users u ON u.id = f.uploader_id`

// ListApproved returns the public library: approved, public files,
// newest first, optionally filtered by subject.
func (r *FileRepo) ListApproved(ctx context.Context, subject string) ([]FileWithUploader, error) {
	q := fileSelect + " WHERE f.approved = 1 AND f.visibility = 'public'"
	args := []interface{}{}
	if subject != "" {
		q += " AND f.subject = ?"
		args = append(args, subject)
	}
	q += " ORDER BY f.created_at DESC"
	return r.queryFiles(ctx, q, args...)
}

// ListByUploader returns a user's own uploads, approved or not.
func (r *FileRepo) ListByUploader(ctx context.Context, uploaderID uint64) ([]FileWithUploader, error) {
	return r.queryFiles(ctx, fileSelect+" WHERE f.uploader_id = ? ORDER BY f.created_at DESC", uploaderID)
}

// ListPending returns files awaiting moderation, oldest first.
func (r *FileRepo) ListPending(ctx context.Context) ([]FileWithUploader, error) {
	return r.queryFiles(ctx, fileSelect+" WHERE f.approved = 0 ORDER BY f.created_at ASC")
}

func (r *FileRepo) queryFiles(ctx context.Context, query string, args ...interface{}) ([]FileWithUploader, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FileWithUploader, 0)
	for rows.Next() {
		var f FileWithUploader
		if err := rows.Scan(
			&f.ID, &f.FileName, &f.FileURL, &f.FileType, &f.FileSize, &f.Subject,
			&f.Description, &f.Visibility, &f.GroupID, &f.DownloadCount, &f.Approved, &f.CreatedAt,
			&f.Uploader.ID, &f.Uploader.FirstName, &f.Uploader.LastName, &f.Uploader.Role, &f.Uploader.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID loads a bare file row. Returns sql.ErrNoRows when absent.
func (r *FileRepo) GetByID(ctx context.Context, id uint64) (model.File, error) {
	var f model.File
	err := r.db.QueryRowContext(ctx,
		`SELECT id, uploader_id, file_name, file_url, storage_key, file_type, file_size,
		        subject, description, visibility, group_id, download_count, approved, created_at
		 FROM files WHERE id = ?`, id).Scan(
		&f.ID, &f.UploaderID, &f.FileName, &f.FileURL, &f.StorageKey, &f.FileType, &f.FileSize,
		&f.Subject, &f.Description, &f.Visibility, &f.GroupID, &f.DownloadCount, &f.Approved, &f.CreatedAt,
	)
	if err != nil {
		return model.File{}, err
	}
	return f, nil
}

// Create records an upload and populates the generated ID.
func (r *FileRepo) Create(ctx context.Context, f *model.File) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO files (uploader_id, file_name, file_url, storage_key, file_type, file_size,
		                    subject, description, visibility, group_id, approved)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		f.UploaderID, f.FileName, f.FileURL, f.StorageKey, f.FileType, f.FileSize,
		f.Subject, f.Description, f.Visibility, f.GroupID, f.Approved)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// IncrementDownloads bumps the download counter.
func (r *FileRepo) IncrementDownloads(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE files SET download_count = download_count + 1 WHERE id = ?", id)
	return err
}

// SetApproved flips the moderation flag.
func (r *FileRepo) SetApproved(ctx context.Context, id uint64, approved bool) error {
	_, err := r.db.ExecContext(ctx, "UPDATE files SET approved = ? WHERE id = ?", approved, id)
	return err
}

// Delete removes the database row. The caller removes the blob on
// disk after this succeeds.
func (r *FileRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	return err
}

// CountAll reports the total number of files, for the stats endpoints.
func (r *FileRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n)
	return n, err
}
