package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

const defaultNotificationLimit = 50

// NotificationService handles the read side of notifications; writes go
// through the Notifier and its queue worker.
type NotificationService struct {
	notifications *repository.NotificationRepository
	log           zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications *repository.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		log:           log.With().Str("component", "notification_service").Logger(),
	}
}

// ListRecent retrieves the newest notifications visible to a user.
func (s *NotificationService) ListRecent(ctx context.Context, userID int) ([]model.Notification, error) {
	return s.notifications.ListRecent(ctx, userID, defaultNotificationLimit)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	return s.notifications.MarkRead(ctx, id)
}
