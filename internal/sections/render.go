package sections

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/nawras-digital/sitecms/internal/domain"
)

// PageView is the decoded, render-ready model consumed by marketing pages.
// Hidden sections are excluded and the remainder is ordered by position.
type PageView struct {
	ID       uuid.UUID     `json:"id"`
	Title    string        `json:"title"`
	Slug     string        `json:"slug"`
	Sections []SectionView `json:"sections"`
}

// SectionView pairs a section's typed content with rendered rich text fields.
type SectionView struct {
	ID       uuid.UUID            `json:"id"`
	Type     domain.SectionType   `json:"type"`
	Title    string               `json:"title"`
	Position int                  `json:"position"`
	Content  Content              `json:"content"`
	HTML     map[string]Bilingual `json:"html,omitempty"`
}

// Renderer converts RICH_TEXT input values (markdown) into sanitized HTML.
// It is stateless and safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a renderer with GFM extensions and a UGC sanitation
// policy.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// RichText renders one markdown value into sanitized HTML.
func (r *Renderer) RichText(value string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(value), &buf); err != nil {
		return "", fmt.Errorf("rich text render: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

func (r *Renderer) richTextPair(b Bilingual) (Bilingual, error) {
	ar, err := r.RichText(b.Ar)
	if err != nil {
		return Bilingual{}, err
	}
	en, err := r.RichText(b.En)
	if err != nil {
		return Bilingual{}, err
	}
	return Bilingual{Ar: ar, En: en}, nil
}

func (s *service) buildPageView(page *Page) (*PageView, error) {
	view := &PageView{
		ID:    page.ID,
		Title: page.Title,
		Slug:  page.Slug,
	}

	for _, section := range page.Sections {
		if !section.IsVisible {
			continue
		}
		content, err := DecodeSection(section)
		if err != nil {
			return nil, err
		}

		sectionView := SectionView{
			ID:       section.ID,
			Type:     section.Type,
			Title:    section.Title,
			Position: section.Position,
			Content:  content,
		}

		if s.renderer != nil {
			rendered, err := s.renderRichFields(content)
			if err != nil {
				return nil, err
			}
			sectionView.HTML = rendered
		}

		view.Sections = append(view.Sections, sectionView)
	}
	return view, nil
}

// renderRichFields renders the RICH_TEXT fields of the known section shapes.
// Shapes without rich text yield no HTML entries.
func (s *service) renderRichFields(content Content) (map[string]Bilingual, error) {
	switch c := content.(type) {
	case StoryContent:
		body, err := s.renderer.richTextPair(c.Body)
		if err != nil {
			return nil, err
		}
		return map[string]Bilingual{"body": body}, nil
	case AboutContent:
		body, err := s.renderer.richTextPair(c.Body)
		if err != nil {
			return nil, err
		}
		return map[string]Bilingual{"body": body}, nil
	default:
		return nil, nil
	}
}
