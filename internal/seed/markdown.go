package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/adrg/frontmatter"

	"github.com/nawras-digital/sitecms/internal/domain"
	"github.com/nawras-digital/sitecms/internal/sections"
)

// documentEnvelope is the frontmatter schema for seed content files. Each
// file describes one section; the page is created on demand from the page
// fields the first time its slug appears.
type documentEnvelope struct {
	Page      string         `yaml:"page"`
	PageTitle string         `yaml:"page_title"`
	Title     string         `yaml:"title"`
	Type      string         `yaml:"type"`
	Position  int            `yaml:"position"`
	Content   map[string]any `yaml:"content"`
}

// ImportDir walks a content directory and creates the pages and sections the
// markdown files describe. Files whose page slug already exists in storage
// contribute sections to that page. Returns the number of sections created.
func (s *Seeder) ImportDir(ctx context.Context, fsys fs.FS, pattern string) (int, error) {
	if pattern == "" {
		pattern = "*.md"
	}

	var created int
	pagesBySlug := map[string]*sections.Page{}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if ok, matchErr := filepath.Match(pattern, entry.Name()); matchErr != nil || !ok {
			return matchErr
		}

		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("seed: read %s: %w", path, err)
		}

		doc, content, err := parseDocument(source)
		if err != nil {
			return fmt.Errorf("seed: parse %s: %w", path, err)
		}

		page, err := s.ensurePage(ctx, pagesBySlug, doc)
		if err != nil {
			return fmt.Errorf("seed: %s: %w", path, err)
		}

		if _, err := s.sections.CreateSection(ctx, sections.CreateSectionRequest{
			PageID:   page.ID,
			Title:    doc.Title,
			Position: doc.Position,
			Content:  content,
		}); err != nil {
			return fmt.Errorf("seed: create section from %s: %w", path, err)
		}
		created++
		return nil
	})
	if err != nil {
		return created, err
	}

	s.logger.Info("imported content directory", "sections", created)
	return created, nil
}

func parseDocument(source []byte) (documentEnvelope, sections.Content, error) {
	var doc documentEnvelope
	if _, err := frontmatter.Parse(bytes.NewReader(source), &doc); err != nil {
		return doc, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if doc.Page == "" {
		return doc, nil, errors.New("frontmatter is missing the page slug")
	}

	sectionType, ok := domain.ParseSectionType(doc.Type)
	if !ok {
		return doc, nil, fmt.Errorf("unknown section type %q", doc.Type)
	}

	// The typed codec speaks JSON; re-encode the YAML mapping to reuse it.
	raw, err := json.Marshal(normalizeYAML(doc.Content))
	if err != nil {
		return doc, nil, fmt.Errorf("encode content: %w", err)
	}
	content, err := sections.UnmarshalContent(sectionType, raw)
	if err != nil {
		return doc, nil, err
	}
	return doc, content, nil
}

func (s *Seeder) ensurePage(ctx context.Context, cache map[string]*sections.Page, doc documentEnvelope) (*sections.Page, error) {
	if page, ok := cache[doc.Page]; ok {
		return page, nil
	}

	page, err := s.sections.GetPage(ctx, doc.Page)
	if err == nil {
		cache[doc.Page] = page
		return page, nil
	}
	var notFound *sections.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	title := doc.PageTitle
	if title == "" {
		title = doc.Page
	}
	page, err = s.sections.CreatePage(ctx, sections.CreatePageRequest{
		Title: title,
		Slug:  doc.Page,
	})
	if err != nil {
		return nil, err
	}
	cache[doc.Page] = page
	return page, nil
}

// normalizeYAML rewrites map[any]any trees into map[string]any so they can be
// marshalled as JSON.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
