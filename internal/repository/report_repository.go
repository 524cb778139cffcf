package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// ReportRepo handles moderation reports.
type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// ReportWithReporter is the moderation-queue projection.
type ReportWithReporter struct {
	ID          uint64                 `json:"id"`
	TargetType  model.ReportTargetType `json:"target_type"`
	TargetID    uint64                 `json:"target_id"`
	Reason      string                 `json:"reason"`
	Status      string                 `json:"status"`
	ReviewNotes *string                `json:"review_notes,omitempty"`
	Reporter    UserSummary            `json:"reporter"`
	CreatedAt   time.Time              `json:"created_at"`
	ResolvedAt  *time.Time             `json:"resolved_at,omitempty"`
}

// Create files a report and populates the generated ID.
func (r *ReportRepo) Create(ctx context.Context, rep *model.Report) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reports (reporter_id, target_type, target_id, reason) VALUES (?,?,?,?)",
		rep.ReporterID, rep.TargetType, rep.TargetID, rep.Reason)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rep.ID = uint64(id)
	rep.Status = model.ReportStatusPending
	return nil
}

// GetByID loads a bare report row. Returns sql.ErrNoRows when absent.
func (r *ReportRepo) GetByID(ctx context.Context, id uint64) (model.Report, error) {
	var rep model.Report
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reporter_id, target_type, target_id, reason, status,
		        reviewed_by, review_notes, created_at, resolved_at
		 FROM reports WHERE id = ?`, id).Scan(
		&rep.ID, &rep.ReporterID, &rep.TargetType, &rep.TargetID, &rep.Reason, &rep.Status,
		&rep.ReviewedBy, &rep.ReviewNotes, &rep.CreatedAt, &rep.ResolvedAt,
	)
	if err != nil {
		return model.Report{}, err
	}
	return rep, nil
}

// List returns reports newest first, optionally filtered by status.
func (r *ReportRepo) List(ctx context.Context, status string) ([]ReportWithReporter, error) {
	q := `SELECT r.id, r.target_type, r.target_id, r.reason, r.status, r.review_notes,
	             r.created_at, r.resolved_at,
	             u.id, u.first_name, u.last_name, u.role, u.profile_image_url
	      FROM reports r
	      JOIN users u ON u.id = r.reporter_id`
	args := []interface{}{}
	if status != "" {
		q += " WHERE r.status = ?"
		args = append(args, status)
	}
	q += " ORDER BY r.created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReportWithReporter, 0)
	for rows.Next() {
		var rep ReportWithReporter
		if err := rows.Scan(
			&rep.ID, &rep.TargetType, &rep.TargetID, &rep.Reason, &rep.Status, &rep.ReviewNotes,
			&rep.CreatedAt, &rep.ResolvedAt,
			&rep.Reporter.ID, &rep.Reporter.FirstName, &rep.Reporter.LastName, &rep.Reporter.Role, &rep.Reporter.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// MarkResolved transitions a pending report to the given terminal
// status in one guarded update. If the report already left the
// pending state, no row matches and ErrAlreadyResolved comes back,
// so two moderators racing on the same report cannot both win.
func (r *ReportRepo) MarkResolved(ctx context.Context, id, reviewerID uint64, status string, notes *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reports SET status = ?, reviewed_by = ?, review_notes = ?, resolved_at = ?
		 WHERE id = ? AND status = 'pending'`,
		status, reviewerID, notes, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the report does not exist or it was resolved
		// already; the caller loads the row first, so distinguish.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM reports WHERE id = ?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
		return ErrAlreadyResolved
	}
	return nil
}

// CountPending reports how many reports await review, for the admin
// stats panel.
func (r *ReportRepo) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reports WHERE status = 'pending'").Scan(&n)
	return n, err
}
