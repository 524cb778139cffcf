// Package queue defines message payloads exchanged over the message broker.
package queue

// AuditEvent is published when a moderation or booking action worth an
// audit trail happens. It carries enough context for downstream
// consumers to log or trigger analytics without querying the primary
// database.
type AuditEvent struct {
	Kind       string `json:"kind"`       // e.g. "report.resolved", "event.booked"
	ActorID    uint64 `json:"actor_id"`   // who performed the action
	SubjectID  uint64 `json:"subject_id"` // id of the affected entity
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"` // RFC3339 UTC
}
