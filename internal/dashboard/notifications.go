package dashboard

import (
	"context"
	"fmt"

	"github.com/nhle/project-dashboard/internal/model"
)

// NotificationInput holds the caller-supplied fields of a notification.
type NotificationInput struct {
	Type      model.NotificationType
	Title     string
	Message   string
	Read      bool
	ProjectID string
}

// AddNotification prepends a notification, keeping at most
// MaxNotifications.
func (s *Store) AddNotification(ctx context.Context, in NotificationInput) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.Notification{}, ErrNoUser
	}
	return s.addNotification(ctx, in), nil
}

// addNotification must be called with mu held and a user open.
func (s *Store) addNotification(ctx context.Context, in NotificationInput) model.Notification {
	n := model.Notification{
		ID:        s.seq.Scoped(s.user.ID, "notification"),
		UserID:    s.user.ID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Timestamp: s.clock(),
		Read:      in.Read,
		ProjectID: in.ProjectID,
	}

	list := make([]model.Notification, 0, min(len(s.notifications)+1, MaxNotifications))
	list = append(list, n)
	list = append(list, s.notifications...)
	if len(list) > MaxNotifications {
		list = list[:MaxNotifications]
	}
	s.notifications = list
	s.saveNotifications(ctx)
	return n
}

// MarkNotificationAsRead marks a single notification read.
func (s *Store) MarkNotificationAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNoUser
	}
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			s.saveNotifications(ctx)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
}

// MarkAllNotificationsAsRead marks every notification read.
func (s *Store) MarkAllNotificationsAsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNoUser
	}
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.saveNotifications(ctx)
	return nil
}

// Notifications returns a copy of the list, newest first.
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification{}, s.notifications...)
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, nt := range s.notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}
