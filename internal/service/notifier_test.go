package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/school-community-platform/internal/model"
)

type fakeDirectory struct {
	ids []uint64
	err error
}

func (f *fakeDirectory) ListIDs(ctx context.Context) ([]uint64, error) { return f.ids, f.err }
func (f *fakeDirectory) MemberIDs(ctx context.Context, groupID uint64) ([]uint64, error) {
	return f.ids, f.err
}

type fakeStore struct {
	created []model.Notification
	failFor map[uint64]bool
}

func (f *fakeStore) Create(ctx context.Context, n *model.Notification) error {
	if f.failFor[n.UserID] {
		return errors.New("insert failed")
	}
	f.created = append(f.created, *n)
	return nil
}

func newTestNotifier(dir *fakeDirectory, store *fakeStore) *Notifier {
	return NewNotifier(dir, dir, store, zap.NewNop())
}

func TestPostCreatedExcludesAuthor(t *testing.T) {
	dir := &fakeDirectory{ids: []uint64{1, 2, 3, 4}}
	store := &fakeStore{}
	n := newTestNotifier(dir, store)

	n.PostCreated(context.Background(), 2, 77, "Dana Cole")

	require.Len(t, store.created, 3)
	for _, row := range store.created {
		assert.NotEqual(t, uint64(2), row.UserID)
		assert.Equal(t, model.NotificationTypePost, row.Type)
		require.NotNil(t, row.RelatedID)
		assert.Equal(t, uint64(77), *row.RelatedID)
	}
}

func TestDeliverContinuesPastFailedInsert(t *testing.T) {
	dir := &fakeDirectory{ids: []uint64{1, 2, 3, 4, 5}}
	store := &fakeStore{failFor: map[uint64]bool{3: true}}
	n := newTestNotifier(dir, store)

	n.EventCreated(context.Background(), 1, 9, "Algebra review")

	// 1 is the host, 3 fails; the rest must still receive rows.
	require.Len(t, store.created, 3)
	got := map[uint64]bool{}
	for _, row := range store.created {
		got[row.UserID] = true
	}
	assert.True(t, got[2] && got[4] && got[5])
}

func TestMessageSentUsesGroupAudience(t *testing.T) {
	dir := &fakeDirectory{ids: []uint64{10, 11}}
	store := &fakeStore{}
	n := newTestNotifier(dir, store)

	n.MessageSent(context.Background(), 5, 10, "Avery Reed", "Chess Club")

	require.Len(t, store.created, 1)
	row := store.created[0]
	assert.Equal(t, uint64(11), row.UserID)
	assert.Equal(t, model.NotificationTypeMessage, row.Type)
	assert.Contains(t, row.Title, "Chess Club")
	require.NotNil(t, row.RelatedID)
	assert.Equal(t, uint64(5), *row.RelatedID)
}

func TestFanOutSkippedWhenAudienceLoadFails(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("db down")}
	store := &fakeStore{}
	n := newTestNotifier(dir, store)

	n.PostCreated(context.Background(), 1, 2, "A B")
	assert.Empty(t, store.created)
}
