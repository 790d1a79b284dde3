package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/notify"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
)

// NotificationService owns the global notification feed. Other services
// record notifications through Emit inside their own transaction and hand
// them to Publish once it has committed.
type NotificationService struct {
	Store     store.Store
	Publisher notify.Publisher
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

// List returns the feed newest first.
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	list, err := s.Store.Notifications().ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(list, func(a, b domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return list, nil
}

// MarkRead flags a notification as read. Unknown ids are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Notifications().MarkNotificationRead(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Debug("mark read on unknown notification", slog.Int64("notification_id", id))
		return nil
	}
	return err
}

// Emit records an unread notification within tx.
func (s *NotificationService) Emit(
	ctx context.Context,
	tx store.Tx,
	kind domain.NotificationType,
	message string,
	link *int64,
) (domain.Notification, error) {
	return tx.Notifications().CreateNotification(ctx, domain.Notification{
		Type:      kind,
		Message:   message,
		LinkID:    link,
		CreatedAt: now(s.Now),
	})
}

// Publish forwards committed notifications to the publisher. Failures are
// logged and counted but never returned; the command has already succeeded.
func (s *NotificationService) Publish(ctx context.Context, notes ...domain.Notification) {
	log := slogx.FromContext(ctx)
	for _, n := range notes {
		s.Metrics.NotificationEmitted(string(n.Type))
		if s.Publisher == nil {
			continue
		}
		if err := s.Publisher.Publish(ctx, n); err != nil {
			s.Metrics.PublishFailed()
			log.Warn("failed to publish notification",
				slog.Int64("notification_id", n.ID),
				slog.String("type", string(n.Type)),
				slog.Any("error", err),
			)
		}
	}
}
