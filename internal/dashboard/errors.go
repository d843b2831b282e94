package dashboard

import "errors"

var (
	ErrNoUser               = errors.New("no user signed in")
	ErrProjectNotFound      = errors.New("project not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidStatus        = errors.New("invalid project status")
)
