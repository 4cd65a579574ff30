package model

import "time"

// NotificationType tags the origin of a notification.
type NotificationType string

const (
	NotificationTypeCourse NotificationType = "course"
	NotificationTypeQuiz   NotificationType = "quiz"
	NotificationTypeSystem NotificationType = "system"
)

// Notification is a fire-and-forget event surfaced to users. RecipientID
// nil means the notification is a broadcast.
type Notification struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	RecipientID *int             `json:"recipient_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
