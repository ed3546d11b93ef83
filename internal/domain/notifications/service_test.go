package notifications

import (
	"context"
	"errors"
	"testing"
)

type fakeNotifStore struct {
	created []Notification
	emails  map[string]string
}

func (f *fakeNotifStore) CreateNotification(ctx context.Context, personID, ntype, title, body string) error {
	f.created = append(f.created, Notification{PersonID: personID, Type: ntype, Title: title, Body: body})
	return nil
}

func (f *fakeNotifStore) PersonEmail(ctx context.Context, personID string) (string, error) {
	if email, ok := f.emails[personID]; ok {
		return email, nil
	}
	return "", errors.New("no such person")
}

func (f *fakeNotifStore) ListNotifications(ctx context.Context, personID string, limit, offset int) ([]Notification, error) {
	var out []Notification
	for _, n := range f.created {
		if n.PersonID == personID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifStore) CountNotifications(ctx context.Context, personID string) (int, error) {
	out, _ := f.ListNotifications(ctx, personID, 0, 0)
	return len(out), nil
}

func (f *fakeNotifStore) MarkRead(ctx context.Context, personID, notificationID string) error {
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, from, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestNotifyPersistsAndMails(t *testing.T) {
	store := &fakeNotifStore{emails: map[string]string{"per-1": "p@example.com"}}
	mailer := &fakeMailer{}
	svc := New(store, mailer, true, "hr@example.com")

	if err := svc.Notify(context.Background(), "per-1", TypeLeaveApproved, "Leave approved", "Enjoy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(store.created))
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "p@example.com" {
		t.Fatalf("expected one email to the person, got %v", mailer.sent)
	}
}

func TestNotifySkipsMailWhenDisabled(t *testing.T) {
	store := &fakeNotifStore{emails: map[string]string{"per-1": "p@example.com"}}
	mailer := &fakeMailer{}
	svc := New(store, mailer, false, "hr@example.com")

	if err := svc.Notify(context.Background(), "per-1", TypeLeaveRejected, "Leave rejected", "Sorry"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no email expected when delivery is off, got %v", mailer.sent)
	}
	if len(store.created) != 1 {
		t.Fatal("notification must still be stored")
	}
}

func TestNotifySwallowsMailFailures(t *testing.T) {
	store := &fakeNotifStore{emails: map[string]string{"per-1": "p@example.com"}}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := New(store, mailer, true, "hr@example.com")

	if err := svc.Notify(context.Background(), "per-1", TypeSeparationApproved, "Separation approved", ""); err != nil {
		t.Fatalf("mail failure must not fail the workflow: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatal("notification must still be stored")
	}
}
