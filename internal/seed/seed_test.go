package seed

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/nawras-digital/sitecms/internal/sections"
)

func newTestSeeder(t *testing.T) (*Seeder, sections.Service) {
	t.Helper()
	service := sections.NewService(
		sections.NewMemoryPageRepository(),
		sections.NewMemorySectionRepository(),
		sections.NewMemoryInputRepository(),
	)
	return New(service), service
}

func TestEnsureDefaultsCreatesStockPages(t *testing.T) {
	ctx := context.Background()
	seeder, service := newTestSeeder(t)

	if err := seeder.EnsureDefaults(ctx); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	home, err := service.GetPage(ctx, "home")
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	if len(home.Sections) != 3 {
		t.Fatalf("home sections = %d, want 3", len(home.Sections))
	}

	about, err := service.GetPage(ctx, "about")
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	if len(about.Sections) != 1 {
		t.Fatalf("about sections = %d, want 1", len(about.Sections))
	}
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	seeder, service := newTestSeeder(t)

	if err := seeder.EnsureDefaults(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeder.EnsureDefaults(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	home, err := service.GetPage(ctx, "home")
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	if len(home.Sections) != 3 {
		t.Fatalf("second run duplicated sections: %d", len(home.Sections))
	}
}

func TestEnsureDefaultsKeepsOperatorEdits(t *testing.T) {
	ctx := context.Background()
	seeder, service := newTestSeeder(t)

	if _, err := service.CreatePage(ctx, sections.CreatePageRequest{Title: "Custom Home", Slug: "home"}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := seeder.EnsureDefaults(ctx); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	home, err := service.GetPage(ctx, "home")
	if err != nil {
		t.Fatalf("get home: %v", err)
	}
	if home.Title != "Custom Home" {
		t.Fatalf("title = %q, existing page should be untouched", home.Title)
	}
	if len(home.Sections) != 0 {
		t.Fatalf("sections = %d, existing page should be untouched", len(home.Sections))
	}
}

func TestImportDirCreatesPagesAndSections(t *testing.T) {
	ctx := context.Background()
	seeder, service := newTestSeeder(t)

	fsys := fstest.MapFS{
		"hero.md": &fstest.MapFile{Data: []byte(`---
page: landing
page_title: Landing
title: Hero
type: HERO
position: 1
content:
  title:
    ar: "مرحبا"
    en: "Welcome"
  sub_title:
    ar: "أهلا"
    en: "We build software"
---
`)},
		"story.md": &fstest.MapFile{Data: []byte(`---
page: landing
title: Story
type: STORY
position: 2
content:
  title:
    ar: "قصتنا"
    en: "Our Story"
  body:
    ar: "نص **عربي**"
    en: "Some **english** markdown"
---
`)},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	created, err := seeder.ImportDir(ctx, fsys, "*.md")
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}
	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}

	page, err := service.GetPage(ctx, "landing")
	if err != nil {
		t.Fatalf("get landing: %v", err)
	}
	if page.Title != "Landing" {
		t.Fatalf("page title = %q", page.Title)
	}
	if len(page.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(page.Sections))
	}
}

func TestImportDirRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	seeder, _ := newTestSeeder(t)

	fsys := fstest.MapFS{
		"bad.md": &fstest.MapFile{Data: []byte(`---
page: landing
title: Gallery
type: GALLERY
content: {}
---
`)},
	}

	if _, err := seeder.ImportDir(ctx, fsys, "*.md"); err == nil {
		t.Fatal("expected error for unknown section type")
	}
}
