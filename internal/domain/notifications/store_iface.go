package notifications

import "context"

type StoreAPI interface {
	CreateNotification(ctx context.Context, personID, ntype, title, body string) error
	PersonEmail(ctx context.Context, personID string) (string, error)
	ListNotifications(ctx context.Context, personID string, limit, offset int) ([]Notification, error)
	CountNotifications(ctx context.Context, personID string) (int, error)
	MarkRead(ctx context.Context, personID, notificationID string) error
}
