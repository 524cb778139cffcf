package model

import "time"

// ReportTargetType identifies the kind of entity a report points at.
// The delete dispatch in the moderation resolver switches over these
// values exhaustively; reports against users are informational only
// and never cascade a delete.
type ReportTargetType string

const (
	ReportTargetPost    ReportTargetType = "post"
	ReportTargetComment ReportTargetType = "comment"
	ReportTargetFile    ReportTargetType = "file"
	ReportTargetUser    ReportTargetType = "user"
)

// Valid reports whether t is one of the known target types.
func (t ReportTargetType) Valid() bool {
	switch t {
	case ReportTargetPost, ReportTargetComment, ReportTargetFile, ReportTargetUser:
		return true
	}
	return false
}

// Report statuses. Resolution is terminal: once resolved or
// dismissed, a report is never reopened.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is a moderation report filed by a user against a post,
// comment, file or another user. TargetID is a loose reference, not
// a foreign key, because the target table depends on TargetType.
type Report struct {
	ID          uint64           `json:"id"`                     // reports.id
	ReporterID  uint64           `json:"reporter_id"`            // reports.reporter_id
	TargetType  ReportTargetType `json:"target_type"`            // reports.target_type
	TargetID    uint64           `json:"target_id"`              // reports.target_id
	Reason      string           `json:"reason"`                 // reports.reason
	Status      string           `json:"status"`                 // reports.status
	ReviewedBy  *uint64          `json:"reviewed_by,omitempty"`  // reports.reviewed_by (nullable)
	ReviewNotes *string          `json:"review_notes,omitempty"` // reports.review_notes (nullable)
	CreatedAt   time.Time        `json:"created_at"`             // reports.created_at
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`  // reports.resolved_at (nullable)
}
