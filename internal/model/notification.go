package model

import "time"

// NotificationType classifies a notification by the project event behind it.
type NotificationType string

const (
	NotificationCreated   NotificationType = "created"
	NotificationUpdated   NotificationType = "updated"
	NotificationCompleted NotificationType = "completed"
	NotificationOnHold    NotificationType = "on-hold"
)

// NotificationTypes lists every notification type.
var NotificationTypes = []NotificationType{
	NotificationCreated,
	NotificationUpdated,
	NotificationCompleted,
	NotificationOnHold,
}

// NotificationTypeFor maps a new project status to the notification type
// emitted when a project moves into it.
func NotificationTypeFor(status ProjectStatus) NotificationType {
	switch status {
	case StatusCompleted:
		return NotificationCompleted
	case StatusOnHold:
		return NotificationOnHold
	default:
		return NotificationUpdated
	}
}

// Notification represents an alert surfaced to the user about activity on
// one of their projects.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`

	// ProjectID is a weak reference; the project may no longer exist.
	ProjectID string `json:"projectId,omitempty"`
}
