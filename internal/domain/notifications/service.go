package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store        StoreAPI
	Mailer       Mailer
	EmailEnabled bool
	From         string
}

func New(store StoreAPI, mailer Mailer, emailEnabled bool, from string) *Service {
	return &Service{store: store, Mailer: mailer, EmailEnabled: emailEnabled, From: from}
}

// Notify persists the notification and, when email delivery is on, mails a
// copy. Email failures are logged and swallowed so the calling workflow never
// fails on a delivery problem.
func (s *Service) Notify(ctx context.Context, personID, ntype, title, body string) error {
	if err := s.store.CreateNotification(ctx, personID, ntype, title, body); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailEnabled {
		return nil
	}

	email, err := s.store.PersonEmail(ctx, personID)
	if err != nil {
		slog.Warn("notification email lookup failed", "personId", personID, "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.From, email, title, body); err != nil {
		slog.Warn("notification email send failed", "personId", personID, "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, personID string, limit, offset int) ([]Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListNotifications(ctx, personID, limit, offset)
}

func (s *Service) Count(ctx context.Context, personID string) (int, error) {
	return s.store.CountNotifications(ctx, personID)
}

func (s *Service) MarkRead(ctx context.Context, personID, notificationID string) error {
	return s.store.MarkRead(ctx, personID, notificationID)
}
