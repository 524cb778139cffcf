package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/queue"
	"github.com/iliyamo/school-community-platform/internal/repository"
)

type fakeReportStore struct {
	report   model.Report
	getErr   error
	markErr  error
	resolved []uint64
}

func (f *fakeReportStore) GetByID(ctx context.Context, id uint64) (model.Report, error) {
	return f.report, f.getErr
}
func (f *fakeReportStore) MarkResolved(ctx context.Context, id, reviewerID uint64, status string, notes *string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.resolved = append(f.resolved, id)
	return nil
}

type fakeDeleter struct {
	deleted []uint64
	err     error
}

func (f *fakeDeleter) Delete(ctx context.Context, id uint64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestResolver(store *fakeReportStore) (*Resolver, *fakeDeleter, *fakeDeleter, *fakeDeleter) {
	posts, comments, files := &fakeDeleter{}, &fakeDeleter{}, &fakeDeleter{}
	r := NewResolver(store, posts, comments, files, zap.NewNop())
	r.publish = func(context.Context, queue.AuditEvent) error { return nil }
	return r, posts, comments, files
}

func TestResolveDispatchesDeleteByTargetType(t *testing.T) {
	tests := []struct {
		target model.ReportTargetType
		want   func(posts, comments, files *fakeDeleter) []uint64
	}{
		{model.ReportTargetPost, func(p, c, f *fakeDeleter) []uint64 { return p.deleted }},
		{model.ReportTargetComment, func(p, c, f *fakeDeleter) []uint64 { return c.deleted }},
		{model.ReportTargetFile, func(p, c, f *fakeDeleter) []uint64 { return f.deleted }},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			store := &fakeReportStore{report: model.Report{ID: 1, TargetType: tt.target, TargetID: 42}}
			r, posts, comments, files := newTestResolver(store)

			err := r.Resolve(context.Background(), 1, 9, model.ReportStatusResolved, nil, true)
			require.NoError(t, err)
			assert.Equal(t, []uint64{42}, tt.want(posts, comments, files))
		})
	}
}

func TestResolveUserReportDeletesNothing(t *testing.T) {
	store := &fakeReportStore{report: model.Report{ID: 1, TargetType: model.ReportTargetUser, TargetID: 42}}
	r, posts, comments, files := newTestResolver(store)

	err := r.Resolve(context.Background(), 1, 9, model.ReportStatusResolved, nil, true)
	require.NoError(t, err)
	assert.Empty(t, posts.deleted)
	assert.Empty(t, comments.deleted)
	assert.Empty(t, files.deleted)
	assert.Equal(t, []uint64{1}, store.resolved)
}

func TestResolveWithoutDeleteLeavesTargetAlone(t *testing.T) {
	store := &fakeReportStore{report: model.Report{ID: 2, TargetType: model.ReportTargetPost, TargetID: 7}}
	r, posts, _, _ := newTestResolver(store)

	err := r.Resolve(context.Background(), 2, 9, model.ReportStatusDismissed, nil, false)
	require.NoError(t, err)
	assert.Empty(t, posts.deleted)
}

func TestResolveDismissalStillPublishesAudit(t *testing.T) {
	store := &fakeReportStore{report: model.Report{ID: 4, TargetType: model.ReportTargetPost, TargetID: 7}}
	r, posts, _, _ := newTestResolver(store)
	var published []queue.AuditEvent
	r.publish = func(_ context.Context, e queue.AuditEvent) error {
		published = append(published, e)
		return nil
	}

	err := r.Resolve(context.Background(), 4, 9, model.ReportStatusDismissed, nil, false)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "report.resolved", published[0].Kind)
	assert.Equal(t, uint64(9), published[0].ActorID)
	assert.Contains(t, published[0].Detail, "deleted=false")
	assert.Empty(t, posts.deleted)
}

func TestResolveAlreadyResolved(t *testing.T) {
	store := &fakeReportStore{
		report:  model.Report{ID: 3, TargetType: model.ReportTargetPost, TargetID: 7},
		markErr: repository.ErrAlreadyResolved,
	}
	r, posts, _, _ := newTestResolver(store)

	err := r.Resolve(context.Background(), 3, 9, model.ReportStatusResolved, nil, true)
	assert.ErrorIs(t, err, repository.ErrAlreadyResolved)
	assert.Empty(t, posts.deleted)
}

func TestResolveUnknownReport(t *testing.T) {
	store := &fakeReportStore{getErr: sql.ErrNoRows}
	r, _, _, _ := newTestResolver(store)

	err := r.Resolve(context.Background(), 99, 9, model.ReportStatusResolved, nil, false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
