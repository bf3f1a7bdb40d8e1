package contacts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type recordingNotifier struct {
	calls []uuid.UUID
	err   error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, contact *Contact) error {
	n.calls = append(n.calls, contact.ID)
	return n.err
}

func validSubmit() SubmitRequest {
	return SubmitRequest{
		Name:    "Layla Hassan",
		Email:   "layla@example.com",
		Phone:   "+9641234567",
		Subject: "Pricing",
		Message: "I would like a quote.",
	}
}

func TestSubmitStoresInquiryAndNotifies(t *testing.T) {
	repo := NewMemoryRepository()
	notifier := &recordingNotifier{}
	svc := NewService(repo, WithNotifier(notifier))

	created, err := svc.Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if created.IsRead {
		t.Fatal("new inquiries must start unread")
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != created.ID {
		t.Fatalf("notifier not called for new inquiry: %v", notifier.calls)
	}
}

func TestSubmitSucceedsWhenNotifierFails(t *testing.T) {
	repo := NewMemoryRepository()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, WithNotifier(notifier))

	created, err := svc.Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("Submit should not fail on notifier error, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("inquiry not stored: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		req  SubmitRequest
	}{
		{"missing name", SubmitRequest{Email: "a@b.com", Message: "hi"}},
		{"missing email", SubmitRequest{Name: "A", Message: "hi"}},
		{"invalid email", SubmitRequest{Name: "A", Email: "not-an-email", Message: "hi"}},
		{"missing message", SubmitRequest{Name: "A", Email: "a@b.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(ctx, tc.req); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetMarksReadOnce(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmit())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	first, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !first.IsRead {
		t.Fatal("first admin view should mark the inquiry read")
	}

	second, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}
	if !second.IsRead {
		t.Fatal("read flag must never transition back to unread")
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	counter := 0
	svc := NewService(repo, WithClock(func() time.Time {
		counter++
		return base.Add(time.Duration(counter) * time.Minute)
	}))
	ctx := context.Background()

	older, _ := svc.Submit(ctx, validSubmit())
	newer, _ := svc.Submit(ctx, validSubmit())

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 inquiries, got %d", len(records))
	}
	if records[0].ID != newer.ID || records[1].ID != older.ID {
		t.Fatal("inquiries not ordered newest first")
	}
}

func TestDeleteInquiry(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, _ := svc.Submit(ctx, validSubmit())
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err := svc.Get(ctx, created.ID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}
