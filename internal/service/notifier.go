package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/school-community-platform/internal/model"
)

// UserDirectory lists notification audiences.
type UserDirectory interface {
	ListIDs(ctx context.Context) ([]uint64, error)
}

// GroupDirectory lists a group's members for chat fan-out.
type GroupDirectory interface {
	MemberIDs(ctx context.Context, groupID uint64) ([]uint64, error)
}

// NotificationStore persists one notification row per recipient.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Notifier fans a content event out into per-recipient notification
// rows. Fan-out is sequential and best effort: a failed insert for
// one recipient is logged and the loop moves on, so a partially
// delivered fan-out is possible and accepted. The actor never
// receives a notification about their own action.
type Notifier struct {
	users         UserDirectory
	groups        GroupDirectory
	notifications NotificationStore
	log           *zap.Logger
}

func NewNotifier(users UserDirectory, groups GroupDirectory, notifications NotificationStore, log *zap.Logger) *Notifier {
	return &Notifier{users: users, groups: groups, notifications: notifications, log: log}
}

// PostCreated notifies every user except the author about a new
// top-level announcement.
func (n *Notifier) PostCreated(ctx context.Context, authorID, postID uint64, authorName string) {
	ids, err := n.users.ListIDs(ctx)
	if err != nil {
		n.log.Warn("fan-out audience load failed", zap.String("kind", "post"), zap.Error(err))
		return
	}
	n.deliver(ctx, ids, authorID, model.Notification{
		Type:      model.NotificationTypePost,
		Title:     "New post",
		Message:   fmt.Sprintf("%s published a new post", authorName),
		RelatedID: &postID,
	})
}

// EventCreated notifies every user except the host about a new
// tutoring event.
func (n *Notifier) EventCreated(ctx context.Context, hostID, eventID uint64, title string) {
	ids, err := n.users.ListIDs(ctx)
	if err != nil {
		n.log.Warn("fan-out audience load failed", zap.String("kind", "event"), zap.Error(err))
		return
	}
	n.deliver(ctx, ids, hostID, model.Notification{
		Type:      model.NotificationTypeEvent,
		Title:     "New tutoring event",
		Message:   fmt.Sprintf("A new event was scheduled: %s", title),
		RelatedID: &eventID,
	})
}

// MessageSent notifies every member of a group except the sender
// about a new chat message.
func (n *Notifier) MessageSent(ctx context.Context, groupID, senderID uint64, senderName, groupName string) {
	ids, err := n.groups.MemberIDs(ctx, groupID)
	if err != nil {
		n.log.Warn("fan-out audience load failed", zap.String("kind", "message"), zap.Error(err))
		return
	}
	n.deliver(ctx, ids, senderID, model.Notification{
		Type:      model.NotificationTypeMessage,
		Title:     fmt.Sprintf("New message in %s", groupName),
		Message:   fmt.Sprintf("%s sent a message", senderName),
		RelatedID: &groupID,
	})
}

// deliver writes one row per recipient, skipping the actor. Failed
// inserts are logged and skipped; delivery for the remaining
// recipients continues.
func (n *Notifier) deliver(ctx context.Context, ids []uint64, actorID uint64, template model.Notification) {
	for _, id := range ids {
		if id == actorID {
			continue
		}
		row := template
		row.UserID = id
		if err := n.notifications.Create(ctx, &row); err != nil {
			n.log.Warn("notification insert failed",
				zap.Uint64("recipient", id), zap.String("type", row.Type), zap.Error(err))
		}
	}
}
