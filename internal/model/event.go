package model

import "time"

// Event represents a scheduled tutoring session in the `events`
// table. The host owns the event; once EndTime passes, the row is
// removed by the expiry sweep and never reappears in listings.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – session title.
//  Description     – optional longer description.
//  HostID          – user who opened the session.
//  Subject         – optional subject/course label.
//  StartTime       – when the session begins.
//  EndTime         – when the session ends (must be after StartTime).
//  LocationURL     – optional meeting link or room reference.
//  ImageURL        – optional cover image.
//  MaxParticipants – booking capacity; nil means unlimited.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Event struct {
	ID              uint64    `json:"id"`                         // events.id
	Title           string    `json:"title"`                      // events.title
	Description     *string   `json:"description,omitempty"`      // events.description (nullable)
	HostID          uint64    `json:"host_id"`                    // events.host_id
	Subject         *string   `json:"subject,omitempty"`          // events.subject (nullable)
	StartTime       time.Time `json:"start_time"`                 // events.start_time
	EndTime         time.Time `json:"end_time"`                   // events.end_time
	LocationURL     *string   `json:"location_url,omitempty"`     // events.location_url (nullable)
	ImageURL        *string   `json:"image_url,omitempty"`        // events.image_url (nullable)
	MaxParticipants *int      `json:"max_participants,omitempty"` // events.max_participants (nullable = unlimited)
	CreatedAt       time.Time `json:"created_at"`                 // events.created_at
	UpdatedAt       time.Time `json:"updated_at"`                 // events.updated_at
}

// EventParticipant is one seat booking, unique per (event, user).
type EventParticipant struct {
	ID       uint64    `json:"id"`        // event_participants.id
	EventID  uint64    `json:"event_id"`  // event_participants.event_id
	UserID   uint64    `json:"user_id"`   // event_participants.user_id
	Status   string    `json:"status"`    // event_participants.status
	BookedAt time.Time `json:"booked_at"` // event_participants.booked_at
}
