package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/config"
	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

const (
	NotificationBatchSize    = 100
	NotificationBatchTimeout = 2 * time.Second
	NotificationPollTimeout  = 1 * time.Second
)

// NotificationWorker drains the notification queue in Redis and persists
// entries in batches. Delivery is best-effort end to end; the request path
// only ever enqueues.
type NotificationWorker struct {
	repo *repository.NotificationRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(repo *repository.NotificationRepository, rdb *redis.Client, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled, then flushes whatever
// is left in the current batch.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	batch := make([]model.Notification, 0, NotificationBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= NotificationBatchSize || time.Since(lastFlush) >= NotificationBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, NotificationPollTimeout, config.WorkerKey.NotificationsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var n model.Notification
			if err := json.Unmarshal([]byte(item[1]), &n); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, n)
		}
	}
}

// flushSafe writes a batch via CopyFrom, falling back to row-by-row inserts
// and requeueing anything that still fails.
func (w *NotificationWorker) flushSafe(ctx context.Context, batch []model.Notification) {
	if len(batch) == 0 {
		return
	}

	err := w.repo.BulkInsert(ctx, batch)
	if err == nil {
		w.log.Debug().Int("count", len(batch)).Msg("notification batch persisted")
		return
	}
	w.log.Warn().Err(err).Msg("bulk insert failed, using fallback")

	for i := range batch {
		n := batch[i]
		if err := w.repo.Insert(ctx, &n); err != nil {
			w.log.Error().Err(err).Msg("single insert failed — requeueing")
			raw, _ := json.Marshal(n)
			w.rdb.RPush(ctx, config.WorkerKey.NotificationsQueue, raw)
		}
	}
}
