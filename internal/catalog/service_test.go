package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newServiceManager(t *testing.T) Manager[*Service] {
	t.Helper()
	repo := NewMemoryRepository(func() *Service { return &Service{} })
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	counter := 0
	return NewManager(repo, func() *Service { return &Service{} },
		WithClock[*Service](func() time.Time {
			counter++
			return base.Add(time.Duration(counter) * time.Second)
		}),
	)
}

func TestCreateRequiresBothTitles(t *testing.T) {
	mgr := newServiceManager(t)

	if _, err := mgr.Create(context.Background(), CreateRequest{TitleAr: "خدمة"}); err == nil {
		t.Fatal("expected validation error for missing english title")
	}
	if _, err := mgr.Create(context.Background(), CreateRequest{TitleEn: "Consulting"}); err == nil {
		t.Fatal("expected validation error for missing arabic title")
	}
}

func TestCreateDefaultsToActive(t *testing.T) {
	mgr := newServiceManager(t)

	created, err := mgr.Create(context.Background(), CreateRequest{TitleAr: "خدمة", TitleEn: "Consulting"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !created.IsActive {
		t.Fatal("new entities should default to active")
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	created, err := mgr.Create(ctx, CreateRequest{
		TitleAr:    "خدمة",
		TitleEn:    "Consulting",
		SubtitleAr: "وصف",
		SubtitleEn: "Advice",
		Image:      "service.png",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newTitle := "Strategy"
	updated, err := mgr.Update(ctx, created.ID, UpdateRequest{TitleEn: &newTitle})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.TitleEn != "Strategy" {
		t.Fatalf("title_en = %q, want %q", updated.TitleEn, "Strategy")
	}
	if updated.TitleAr != "خدمة" || updated.SubtitleEn != "Advice" || updated.Image != "service.png" {
		t.Fatalf("untouched fields changed: %#v", updated.Entry)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	created, err := mgr.Create(ctx, CreateRequest{TitleAr: "خدمة", TitleEn: "Consulting"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	blank := "   "
	if _, err := mgr.Update(ctx, created.ID, UpdateRequest{TitleAr: &blank}); err == nil {
		t.Fatal("expected validation error for blanked arabic title")
	}
}

func TestToggleVisibilityDoubleCallRestoresState(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	created, err := mgr.Create(ctx, CreateRequest{TitleAr: "خدمة", TitleEn: "Consulting"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	first, err := mgr.ToggleVisibility(ctx, created.ID)
	if err != nil {
		t.Fatalf("first ToggleVisibility returned error: %v", err)
	}
	if first.IsActive {
		t.Fatal("first toggle should deactivate")
	}

	second, err := mgr.ToggleVisibility(ctx, created.ID)
	if err != nil {
		t.Fatalf("second ToggleVisibility returned error: %v", err)
	}
	if !second.IsActive {
		t.Fatal("second toggle should restore the original active state")
	}
}

func TestListFiltersInactive(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	active, err := mgr.Create(ctx, CreateRequest{TitleAr: "أ", TitleEn: "Active"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	hidden, err := mgr.Create(ctx, CreateRequest{TitleAr: "ب", TitleEn: "Hidden"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := mgr.ToggleVisibility(ctx, hidden.ID); err != nil {
		t.Fatalf("ToggleVisibility returned error: %v", err)
	}

	all, err := mgr.List(ctx, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list should include inactive entities, got %d", len(all))
	}

	public, err := mgr.List(ctx, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(public) != 1 || public[0].ID != active.ID {
		t.Fatalf("public list should include only active entities, got %d", len(public))
	}
}

func TestListOrdersByCreation(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	first, _ := mgr.Create(ctx, CreateRequest{TitleAr: "أ", TitleEn: "First"})
	second, _ := mgr.Create(ctx, CreateRequest{TitleAr: "ب", TitleEn: "Second"})

	records, err := mgr.List(ctx, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if records[0].ID != first.ID || records[1].ID != second.ID {
		t.Fatal("entities not ordered by creation time")
	}
}

func TestDeleteRemovesEntity(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	created, err := mgr.Create(ctx, CreateRequest{TitleAr: "خدمة", TitleEn: "Consulting"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := mgr.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	_, err = mgr.Get(ctx, created.ID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

func TestOperationsRequireID(t *testing.T) {
	mgr := newServiceManager(t)
	ctx := context.Background()

	if _, err := mgr.Get(ctx, uuid.Nil); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("Get: expected ErrIDRequired, got %v", err)
	}
	if err := mgr.Delete(ctx, uuid.Nil); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("Delete: expected ErrIDRequired, got %v", err)
	}
	if _, err := mgr.ToggleVisibility(ctx, uuid.Nil); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("ToggleVisibility: expected ErrIDRequired, got %v", err)
	}
}

func TestManagersWorkPerEntityType(t *testing.T) {
	ctx := context.Background()

	features := NewManager(
		NewMemoryRepository(func() *Feature { return &Feature{} }),
		func() *Feature { return &Feature{} },
	)
	clients := NewManager(
		NewMemoryRepository(func() *Client { return &Client{} }),
		func() *Client { return &Client{} },
	)

	feature, err := features.Create(ctx, CreateRequest{TitleAr: "ميزة", TitleEn: "Fast"})
	if err != nil {
		t.Fatalf("feature Create returned error: %v", err)
	}
	if feature.Resource() != "feature" {
		t.Fatalf("feature resource = %q", feature.Resource())
	}

	client, err := clients.Create(ctx, CreateRequest{TitleAr: "عميل", TitleEn: "Acme"})
	if err != nil {
		t.Fatalf("client Create returned error: %v", err)
	}
	if client.Resource() != "client" {
		t.Fatalf("client resource = %q", client.Resource())
	}
}
