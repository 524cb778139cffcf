package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/queue"
	"github.com/iliyamo/school-community-platform/internal/repository"
)

// ReportStore is the slice of the report repository the resolver
// needs.
type ReportStore interface {
	GetByID(ctx context.Context, id uint64) (model.Report, error)
	MarkResolved(ctx context.Context, id, reviewerID uint64, status string, notes *string) error
}

// TargetDeleter removes a reported entity by id. Post, comment and
// file repositories satisfy it.
type TargetDeleter interface {
	Delete(ctx context.Context, id uint64) error
}

// Resolver applies a moderator's decision to a report: it marks the
// report resolved or dismissed and, when the decision says so,
// removes the offending content. Reports against users never cascade
// a delete; blocking is a separate admin action.
type Resolver struct {
	reports  ReportStore
	posts    TargetDeleter
	comments TargetDeleter
	files    TargetDeleter
	log      *zap.Logger
	publish  func(context.Context, queue.AuditEvent) error
}

func NewResolver(reports ReportStore, posts, comments, files TargetDeleter, log *zap.Logger) *Resolver {
	return &Resolver{
		reports: reports, posts: posts, comments: comments, files: files,
		log: log, publish: PublishAudit,
	}
}

// Resolve finalizes one report. deleteTarget controls whether the
// reported content is removed as part of the resolution. The status
// transition happens first and is the authoritative step: once it
// succeeds the report is terminal even if the cascade delete fails,
// which is logged and surfaced to the caller.
//
// Errors: sql.ErrNoRows (no such report), repository.ErrAlreadyResolved.
func (s *Resolver) Resolve(ctx context.Context, reportID, reviewerID uint64, status string, notes *string, deleteTarget bool) error {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if err := s.reports.MarkResolved(ctx, reportID, reviewerID, status, notes); err != nil {
		return err
	}
	if err := s.publish(ctx, queue.AuditEvent{
		Kind:      "report.resolved",
		ActorID:   reviewerID,
		SubjectID: reportID,
		Detail:    fmt.Sprintf("status=%s target_type=%s target_id=%d deleted=%t", status, rep.TargetType, rep.TargetID, deleteTarget),
	}); err != nil {
		s.log.Warn("audit publish failed", zap.Uint64("report", reportID), zap.Error(err))
	}
	if !deleteTarget {
		return nil
	}
	if err := s.deleteTarget(ctx, rep.TargetType, rep.TargetID); err != nil {
		s.log.Error("report target delete failed",
			zap.Uint64("report", reportID),
			zap.String("target_type", string(rep.TargetType)),
			zap.Uint64("target_id", rep.TargetID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *Resolver) deleteTarget(ctx context.Context, t model.ReportTargetType, id uint64) error {
	switch t {
	case model.ReportTargetPost:
		return s.posts.Delete(ctx, id)
	case model.ReportTargetComment:
		return s.comments.Delete(ctx, id)
	case model.ReportTargetFile:
		return s.files.Delete(ctx, id)
	case model.ReportTargetUser:
		// Reports against users are informational; nothing to delete.
		return nil
	default:
		return fmt.Errorf("unknown report target type %q", t)
	}
}

var _ TargetDeleter = (*repository.PostRepo)(nil)
var _ TargetDeleter = (*repository.CommentRepo)(nil)
var _ TargetDeleter = (*repository.FileRepo)(nil)
