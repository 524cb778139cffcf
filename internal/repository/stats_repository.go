package repository

import (
	"context"
	"database/sql"
)

// StatsRepo aggregates the counters behind the public landing page
// and the admin dashboard.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// PublicStats is the unauthenticated landing-page summary.
type PublicStats struct {
	Users  int `json:"users"`
	Groups int `json:"groups"`
	Events int `json:"events"`
	Files  int `json:"files"`
}

// AdminStats extends the public counters with moderation load.
type AdminStats struct {
	PublicStats
	Posts            int `json:"posts"`
	PendingReports   int `json:"pending_reports"`
	PendingFiles     int `json:"pending_files"`
	UnverifiedUsers  int `json:"unverified_users"`
	BlockedUsers     int `json:"blocked_users"`
	BookingsTotal    int `json:"bookings_total"`
	NotificationsAll int `json:"notifications_total"`
}

// Public returns the landing-page counters.
func (r *StatsRepo) Public(ctx context.Context) (PublicStats, error) {
	var s PublicStats
	err := r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM `+"`groups`"+`),
		        (SELECT COUNT(*) FROM events),
		        (SELECT COUNT(*) FROM files WHERE approved = 1)`).Scan(
		&s.Users, &s.Groups, &s.Events, &s.Files)
	return s, err
}

// Admin returns the full dashboard counters.
func (r *StatsRepo) Admin(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	err := r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM `+"`groups`"+`),
		        (SELECT COUNT(*) FROM events),
		        (SELECT COUNT(*) FROM files),
		        (SELECT COUNT(*) FROM posts),
		        (SELECT COUNT(*) FROM reports WHERE status = 'pending'),
		        (SELECT COUNT(*) FROM files WHERE approved = 0),
		        (SELECT COUNT(*) FROM users WHERE verified = 0),
		        (SELECT COUNT(*) FROM users WHERE blocked = 1),
		        (SELECT COUNT(*) FROM event_participants),
		        (SELECT COUNT(*) FROM notifications)`).Scan(
		&s.Users, &s.Groups, &s.Events, &s.Files,
		&s.Posts, &s.PendingReports, &s.PendingFiles,
		&s.UnverifiedUsers, &s.BlockedUsers, &s.BookingsTotal, &s.NotificationsAll)
	return s, err
}
