package sections

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(t *testing.T) (Service, *MemoryPageRepository, *MemorySectionRepository, *MemoryInputRepository) {
	t.Helper()
	pages := NewMemoryPageRepository()
	sectionRepo := NewMemorySectionRepository()
	inputs := NewMemoryInputRepository()
	svc := NewService(pages, sectionRepo, inputs,
		WithClock(func() time.Time { return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC) }),
	)
	return svc, pages, sectionRepo, inputs
}

func heroContent() HeroContent {
	return HeroContent{
		Title:    Bilingual{Ar: "أ", En: "A"},
		SubTitle: Bilingual{Ar: "ب", En: "B"},
	}
}

func TestCreatePageNormalizesSlug(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	page, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Home Page", Slug: "Home Page"})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}
	if page.Slug != "home-page" {
		t.Fatalf("slug = %q, want %q", page.Slug, "home-page")
	}
	if page.ID == uuid.Nil {
		t.Fatal("expected generated page id")
	}
}

func TestCreatePageRejectsDuplicateSlug(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"}); err != nil {
		t.Fatalf("first CreatePage returned error: %v", err)
	}
	if _, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Again", Slug: "home"}); !errors.Is(err, ErrPageSlugExists) {
		t.Fatalf("expected ErrPageSlugExists, got %v", err)
	}
}

func TestCreatePageRequiresSlug(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	if _, err := svc.CreatePage(context.Background(), CreatePageRequest{}); !errors.Is(err, ErrPageSlugRequired) {
		t.Fatalf("expected ErrPageSlugRequired, got %v", err)
	}
}

func TestCreateSectionEncodesContent(t *testing.T) {
	svc, _, _, inputs := newTestService(t)
	ctx := context.Background()

	page, err := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}

	section, err := svc.CreateSection(ctx, CreateSectionRequest{
		PageID:  page.ID,
		Title:   "Landing hero",
		Content: heroContent(),
	})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	if !section.IsVisible {
		t.Fatal("sections should default to visible")
	}

	rows, err := inputs.ListBySection(ctx, section.ID)
	if err != nil {
		t.Fatalf("ListBySection returned error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 input rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.SectionID != section.ID {
			t.Fatalf("row %q not stamped with section id", row.Label)
		}
		if row.ID == uuid.Nil {
			t.Fatalf("row %q missing generated id", row.Label)
		}
	}
}

func TestCreateSectionUnknownPage(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateSection(context.Background(), CreateSectionRequest{
		PageID:  uuid.New(),
		Content: heroContent(),
	})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateSectionReplacesRowsWholesale(t *testing.T) {
	svc, _, _, inputs := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	section, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Content: heroContent()})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	updated := heroContent()
	updated.Title.En = "Updated"
	updated.Image = "banner.png"

	if _, err := svc.UpdateSection(ctx, UpdateSectionRequest{SectionID: section.ID, Content: updated}); err != nil {
		t.Fatalf("UpdateSection returned error: %v", err)
	}

	rows, _ := inputs.ListBySection(ctx, section.ID)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows after update with image, got %d", len(rows))
	}
	decoded, err := Decode(section.Type, rows)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	hero := decoded.(HeroContent)
	if hero.Title.En != "Updated" || hero.Image != "banner.png" {
		t.Fatalf("update not reflected in stored rows: %#v", hero)
	}
}

func TestUpdateSectionIdempotentRowSet(t *testing.T) {
	svc, _, _, inputs := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	section, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Content: heroContent()})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	payload := heroContent()
	if _, err := svc.UpdateSection(ctx, UpdateSectionRequest{SectionID: section.ID, Content: payload}); err != nil {
		t.Fatalf("first UpdateSection returned error: %v", err)
	}
	first, _ := inputs.ListBySection(ctx, section.ID)

	if _, err := svc.UpdateSection(ctx, UpdateSectionRequest{SectionID: section.ID, Content: payload}); err != nil {
		t.Fatalf("second UpdateSection returned error: %v", err)
	}
	second, _ := inputs.ListBySection(ctx, section.ID)

	if len(first) != len(second) {
		t.Fatalf("row counts differ after repeated update: %d vs %d", len(first), len(second))
	}
	snapshot := func(rows []*Input) []string {
		out := make([]string, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.Label+"="+row.Value)
		}
		sort.Strings(out)
		return out
	}
	a, b := snapshot(first), snapshot(second)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row sets differ after repeated update: %v vs %v", a, b)
		}
	}
}

func TestUpdateSectionTypeMismatch(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	section, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Content: heroContent()})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	wrong := StoryContent{
		Title: Bilingual{Ar: "أ", En: "A"},
		Body:  Bilingual{Ar: "ب", En: "B"},
	}
	if _, err := svc.UpdateSection(ctx, UpdateSectionRequest{SectionID: section.ID, Content: wrong}); !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}
}

func TestUpdateSectionValidatesPayload(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	section, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Content: heroContent()})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	invalid := HeroContent{Title: Bilingual{Ar: "أ"}}
	if _, err := svc.UpdateSection(ctx, UpdateSectionRequest{SectionID: section.ID, Content: invalid}); err == nil {
		t.Fatal("expected validation error for missing english title")
	}
}

func TestSetSectionVisibility(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	section, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Content: heroContent()})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	hidden, err := svc.SetSectionVisibility(ctx, section.ID, false)
	if err != nil {
		t.Fatalf("SetSectionVisibility returned error: %v", err)
	}
	if hidden.IsVisible {
		t.Fatal("expected section to be hidden")
	}

	shown, err := svc.SetSectionVisibility(ctx, section.ID, true)
	if err != nil {
		t.Fatalf("SetSectionVisibility returned error: %v", err)
	}
	if !shown.IsVisible {
		t.Fatal("expected section to be visible again")
	}
}

func TestReorderSectionRejectsNegativePosition(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	if _, err := svc.ReorderSection(context.Background(), uuid.New(), -1); !errors.Is(err, ErrPositionInvalid) {
		t.Fatalf("expected ErrPositionInvalid, got %v", err)
	}
}

func TestGetPageIncludesHiddenSections(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	visible := false
	if _, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Position: 1, Content: heroContent(), IsVisible: &visible}); err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	if _, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Position: 2, Content: ServicesContent{
		Title:    Bilingual{Ar: "خدماتنا", En: "Services"},
		SubTitle: Bilingual{Ar: "وصف", En: "What we do"},
	}}); err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	loaded, err := svc.GetPage(ctx, "home")
	if err != nil {
		t.Fatalf("GetPage returned error: %v", err)
	}
	if len(loaded.Sections) != 2 {
		t.Fatalf("admin read should include hidden sections, got %d", len(loaded.Sections))
	}
	if loaded.Sections[0].Position > loaded.Sections[1].Position {
		t.Fatal("sections not sorted by position")
	}
}

func TestPublicPageFiltersHiddenAndRendersRichText(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, CreatePageRequest{Title: "Home", Slug: "home"})
	hidden := false
	if _, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Position: 1, Content: heroContent(), IsVisible: &hidden}); err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	if _, err := svc.CreateSection(ctx, CreateSectionRequest{PageID: page.ID, Position: 2, Content: StoryContent{
		Title: Bilingual{Ar: "قصتنا", En: "Our Story"},
		Body:  Bilingual{Ar: "**غامق**", En: "**bold**"},
	}}); err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}

	view, err := svc.PublicPage(ctx, "home")
	if err != nil {
		t.Fatalf("PublicPage returned error: %v", err)
	}
	if len(view.Sections) != 1 {
		t.Fatalf("public view should drop hidden sections, got %d", len(view.Sections))
	}
	rendered, ok := view.Sections[0].HTML["body"]
	if !ok {
		t.Fatal("expected rendered body html for story section")
	}
	if !strings.Contains(rendered.En, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %q", rendered.En)
	}
}

func TestGetSectionNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetSection(context.Background(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
