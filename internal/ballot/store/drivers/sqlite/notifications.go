package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
)

type notificationsRepo struct {
	q dbtx
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	var link sql.NullInt64
	if n.LinkID != nil {
		link = sql.NullInt64{Int64: *n.LinkID, Valid: true}
	}
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO notifications (type, message, link_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Message, link, n.Read, toMillis(n.CreatedAt))
	if err != nil {
		return domain.Notification{}, err
	}
	if n.ID, err = res.LastInsertId(); err != nil {
		return domain.Notification{}, err
	}
	if n.LinkID != nil {
		n.LinkID = domain.Link(*n.LinkID)
	}
	return n, nil
}

func (r *notificationsRepo) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, type, message, link_id, is_read, created_at FROM notifications ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n       domain.Notification
			typ     string
			link    sql.NullInt64
			created int64
		)
		if err := rows.Scan(&n.ID, &typ, &n.Message, &link, &n.Read, &created); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		if link.Valid {
			n.LinkID = domain.Link(link.Int64)
		}
		n.CreatedAt = fromMillis(created)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id int64) error {
	// Rows are matched even when already read so repeat calls stay idempotent.
	return affectedOrNotFound(r.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ?`, id))
}

func (r *notificationsRepo) ExistsNotification(ctx context.Context, t domain.NotificationType, linkID int64) (bool, error) {
	n, err := count(ctx, r.q,
		`SELECT COUNT(*) FROM notifications WHERE type = ? AND link_id = ?`, string(t), linkID)
	return n > 0, err
}
