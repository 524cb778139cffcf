package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// EventRepo owns the tutoring-event lifecycle: listings with their
// lazy expiry sweep, host-scoped deletes, and the transactional
// booking path that enforces capacity, host exclusivity and the
// one-booking-per-user rule.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for handlers that need to open a
// transaction spanning several repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

// EventWithHost is the listing projection: the event row joined with
// its host and the current participant count.
type EventWithHost struct {
	ID              uint64      `json:"id"`
	Title           string      `json:"title"`
	Description     *string     `json:"description,omitempty"`
	Subject         *string     `json:"subject,omitempty"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	LocationURL     *string     `json:"location_url,omitempty"`
	ImageURL        *string     `json:"image_url,omitempty"`
	MaxParticipants *int        `json:"max_participants,omitempty"`
	Host            UserSummary `json:"host"`
	ParticipantCnt  int         `json:"participant_count"`
	CreatedAt       time.Time   `json:"created_at"`
}

// UserSummary is the public author/host/uploader projection joined
// into listing responses.
type UserSummary struct {
	ID              uint64  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Role            string  `json:"role"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// ReapExpired deletes every event whose end time is strictly in the
// past. Participant rows go with the events via FK cascade. The
// listing handlers call this before every read, so an expired event
// can never appear in a listing response. There is no archival; the
// delete is final.
func (r *EventRepo) ReapExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM events WHERE end_time < ?", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const eventSelect = `SELECT e.id, e.title, e.description, e.subject, e.start_time, e.end_time,
	       e.location_url, e.image_url, e.max_participants, e.created_at,
	       u.id, u.first_name, u.last_name, u.role, u.profile_image_url,
	       (SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id)
	FROM events e
	JOIN users u ON u.id = e.host_id`

// List returns all live events, newest start first.
func (r *EventRepo) List(ctx context.Context) ([]EventWithHost, error) {
	return r.queryEvents(ctx, eventSelect+" ORDER BY e.start_time DESC")
}

// ListByHost returns events hosted by the given user.
func (r *EventRepo) ListByHost(ctx context.Context, hostID uint64) ([]EventWithHost, error) {
	return r.queryEvents(ctx, eventSelect+" WHERE e.host_id = ? ORDER BY e.start_time DESC", hostID)
}

// ListBooked returns events the given user holds a booking for.
func (r *EventRepo) ListBooked(ctx context.Context, userID uint64) ([]EventWithHost, error) {
	q := eventSelect + ` JOIN event_participants b ON b.event_id = e.id AND b.user_id = ?
	ORDER BY e.start_time DESC`
	return r.queryEvents(ctx, q, userID)
}

func (r *EventRepo) queryEvents(ctx context.Context, query string, args ...interface{}) ([]EventWithHost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]EventWithHost, 0)
	for rows.Next() {
		var (
			ev  EventWithHost
			max sql.NullInt64
		)
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.Subject, &ev.StartTime, &ev.EndTime,
			&ev.LocationURL, &ev.ImageURL, &max, &ev.CreatedAt,
			&ev.Host.ID, &ev.Host.FirstName, &ev.Host.LastName, &ev.Host.Role, &ev.Host.ProfileImageURL,
			&ev.ParticipantCnt,
		); err != nil {
			return nil, err
		}
		if max.Valid {
			m := int(max.Int64)
			ev.MaxParticipants = &m
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// GetByID loads a bare event row. Returns sql.ErrNoRows when absent.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	var (
		ev  model.Event
		max sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, host_id, subject, start_time, end_time,
		        location_url, image_url, max_participants, created_at, updated_at
		 FROM events WHERE id = ?`, id).Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.HostID, &ev.Subject, &ev.StartTime, &ev.EndTime,
		&ev.LocationURL, &ev.ImageURL, &max, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return model.Event{}, err
	}
	if max.Valid {
		m := int(max.Int64)
		ev.MaxParticipants = &m
	}
	return ev, nil
}

// Create inserts an event and populates the generated ID. The
// start < end invariant is validated by the handler before this is
// called.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (title, description, host_id, subject, start_time, end_time,
		                     location_url, image_url, max_participants)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		ev.Title, ev.Description, ev.HostID, ev.Subject, ev.StartTime.UTC(), ev.EndTime.UTC(),
		ev.LocationURL, ev.ImageURL, ev.MaxParticipants)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// Delete removes an event and, via cascade, all of its bookings.
// Ownership is checked by the caller against GetByID.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	return err
}

// Book reserves one seat for userID in eventID. The whole
// check-then-insert runs in a single transaction with the event row
// locked, so two concurrent requests for the last seat serialize:
// the second sees the first one's insert and is refused. The unique
// (event_id, user_id) index backstops the duplicate check.
//
// Errors: sql.ErrNoRows (no such event), ErrHostBooking,
// ErrAlreadyBooked, ErrEventFull.
func (r *EventRepo) Book(ctx context.Context, eventID, userID uint64) error {
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

	var (
		hostID uint64
		max    sql.NullInt64
	)
	err = tx.QueryRowContext(ctx,
		"SELECT host_id, max_participants FROM events WHERE id = ? FOR UPDATE",
		eventID).Scan(&hostID, &max)
	if err != nil {
		return err
	}

	var booked bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = ? AND user_id = ?)",
		eventID, userID).Scan(&booked)
	if err != nil {
		return err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_participants WHERE event_id = ?", eventID).Scan(&count)
	if err != nil {
		return err
	}

	if err := bookingGuard(hostID, userID, booked, count, max); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO event_participants (event_id, user_id) VALUES (?,?)",
		eventID, userID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrAlreadyBooked
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// bookingGuard decides whether a booking attempt may proceed. It is
// evaluated inside the booking transaction with the event row locked.
func bookingGuard(hostID, userID uint64, alreadyBooked bool, count int, max sql.NullInt64) error {
	if hostID == userID {
		return ErrHostBooking
	}
	if alreadyBooked {
		return ErrAlreadyBooked
	}
	if max.Valid && int64(count) >= max.Int64 {
		return ErrEventFull
	}
	return nil
}

// CancelBooking removes the caller's booking if present. Cancelling
// a booking that does not exist is a no-op, not an error.
func (r *EventRepo) CancelBooking(ctx context.Context, eventID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM event_participants WHERE event_id = ? AND user_id = ?",
		eventID, userID)
	return err
}
