package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/config"
	"github.com/imon025/quizi-backend/internal/model"
)

// Notifier delivers notifications on a best-effort basis. Implementations
// must never fail the calling operation: a lost notification is logged and
// dropped.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}

// QueueNotifier pushes notifications onto a Redis list drained by the
// persistence worker.
type QueueNotifier struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewQueueNotifier creates a Redis-backed notifier.
func NewQueueNotifier(rdb *redis.Client, log zerolog.Logger) *QueueNotifier {
	return &QueueNotifier{
		rdb: rdb,
		log: log.With().Str("component", "notifier").Logger(),
	}
}

// Notify enqueues a notification. Errors are logged, never propagated.
func (n *QueueNotifier) Notify(ctx context.Context, notif model.Notification) {
	raw, err := json.Marshal(notif)
	if err != nil {
		n.log.Error().Err(err).Str("title", notif.Title).Msg("failed to encode notification")
		return
	}
	if err := n.rdb.RPush(ctx, config.WorkerKey.NotificationsQueue, raw).Err(); err != nil {
		n.log.Warn().Err(err).Str("title", notif.Title).Msg("failed to enqueue notification")
	}
}
