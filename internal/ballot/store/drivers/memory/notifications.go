package memory

import (
	"context"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

type notificationsRepo struct {
	db db
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	err := r.db.write(func(data *dataset) error {
		data.seq.notification++
		n.ID = data.seq.notification
		n = cloneNotification(n)
		data.notifications = append(data.notifications, cloneNotification(n))
		return nil
	})
	return n, err
}

func (r *notificationsRepo) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.read(func(data *dataset) error {
		out = make([]domain.Notification, len(data.notifications))
		for i, n := range data.notifications {
			out[i] = cloneNotification(n)
		}
		return nil
	})
	return out, err
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id int64) error {
	return r.db.write(func(data *dataset) error {
		for i := range data.notifications {
			if data.notifications[i].ID == id {
				data.notifications[i].Read = true
				return nil
			}
		}
		return store.ErrNotFound
	})
}

func (r *notificationsRepo) ExistsNotification(ctx context.Context, t domain.NotificationType, linkID int64) (bool, error) {
	var found bool
	err := r.db.read(func(data *dataset) error {
		for _, n := range data.notifications {
			if n.Type == t && n.LinkID != nil && *n.LinkID == linkID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}
