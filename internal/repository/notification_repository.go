package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imon025/quizi-backend/internal/model"
)

// NotificationRepository handles notification data access.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// ListRecent retrieves the most recent notifications visible to a user:
// broadcasts plus those addressed to them.
func (r *NotificationRepository) ListRecent(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, message, type, recipient_id, is_read, created_at
		 FROM notifications
		 WHERE recipient_id IS NULL OR recipient_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.RecipientID,
			&n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkRead flags a notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	return err
}

// BulkInsert writes a batch of notifications via CopyFrom. Used by the
// fan-out worker draining the Redis queue.
func (r *NotificationRepository) BulkInsert(ctx context.Context, batch []model.Notification) error {
	rows := make([][]interface{}, 0, len(batch))
	now := time.Now()
	for i := range batch {
		n := &batch[i]
		created := n.CreatedAt
		if created.IsZero() {
			created = now
		}
		rows = append(rows, []interface{}{
			n.Title, n.Message, n.Type, n.RecipientID, created,
		})
	}
	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"notifications"},
		[]string{"title", "message", "type", "recipient_id", "created_at"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// Insert writes a single notification. Fallback path for the worker when a
// bulk insert fails.
func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (title, message, type, recipient_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		n.Title, n.Message, n.Type, n.RecipientID,
	).Scan(&n.ID, &n.CreatedAt)
}
