package sections

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Service exposes page and section content use cases.
type Service interface {
	CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error)
	ListPages(ctx context.Context) ([]*Page, error)
	GetPage(ctx context.Context, slug string) (*Page, error)
	PublicPage(ctx context.Context, slug string) (*PageView, error)
	CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error)
	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	UpdateSection(ctx context.Context, req UpdateSectionRequest) (*Section, error)
	SetSectionVisibility(ctx context.Context, id uuid.UUID, visible bool) (*Section, error)
	ReorderSection(ctx context.Context, id uuid.UUID, position int) (*Section, error)
}

// CreatePageRequest captures the information required to create a page.
type CreatePageRequest struct {
	Title string
	Slug  string
}

// CreateSectionRequest captures the information required to add a section to a
// page, including its initial typed content.
type CreateSectionRequest struct {
	PageID    uuid.UUID
	Title     string
	Position  int
	IsVisible *bool
	Content   Content
}

// UpdateSectionRequest carries the full replacement payload for one section.
// Every update replaces the section's input rows wholesale.
type UpdateSectionRequest struct {
	SectionID uuid.UUID
	Content   Content
}

// PageRepository abstracts storage operations for pages.
type PageRepository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	InvalidateCache(ctx context.Context) error
}

// SectionRepository abstracts storage operations for sections.
type SectionRepository interface {
	Create(ctx context.Context, record *Section) (*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error)
	Update(ctx context.Context, record *Section) (*Section, error)
	InvalidateCache(ctx context.Context) error
}

// InputRepository abstracts storage operations for section input rows.
// Replace swaps a section's full row set in one atomic operation.
type InputRepository interface {
	ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*Input, error)
	ListBySections(ctx context.Context, sectionIDs []uuid.UUID) ([]*Input, error)
	Replace(ctx context.Context, sectionID uuid.UUID, rows []*Input) error
	InvalidateCache(ctx context.Context) error
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer overrides the rich text renderer used for public page views.
func WithRenderer(renderer *Renderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

type service struct {
	pages    PageRepository
	sections SectionRepository
	inputs   InputRepository
	renderer *Renderer
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
}

// NewService constructs a section content service with the required dependencies.
func NewService(pages PageRepository, sectionRepo SectionRepository, inputs InputRepository, opts ...ServiceOption) Service {
	s := &service{
		pages:    pages,
		sections: sectionRepo,
		inputs:   inputs,
		renderer: NewRenderer(),
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePage registers a new page container. Pages are normally created at
// seed time only.
func (s *service) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	normalized := strings.TrimSpace(req.Slug)
	if normalized == "" {
		normalized = strings.TrimSpace(req.Title)
	}
	if normalized == "" {
		return nil, ErrPageSlugRequired
	}

	normalized, err := slug.Normalize(normalized)
	if err != nil || !slug.IsValid(normalized) {
		return nil, ErrPageSlugInvalid
	}

	if existing, err := s.pages.GetBySlug(ctx, normalized); err == nil && existing != nil {
		return nil, ErrPageSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Page{
		ID:        s.id(),
		Title:     strings.TrimSpace(req.Title),
		Slug:      normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.pages.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := s.pages.InvalidateCache(ctx); err != nil {
		s.logger.Warn("page cache invalidation failed", "error", err)
	}
	return created, nil
}

// ListPages returns all page containers without their sections.
func (s *service) ListPages(ctx context.Context) ([]*Page, error) {
	return s.pages.List(ctx)
}

// GetPage loads a page with every section and input, hidden sections included,
// sorted for stable admin display.
func (s *service) GetPage(ctx context.Context, pageSlug string) (*Page, error) {
	page, err := s.pages.GetBySlug(ctx, strings.TrimSpace(pageSlug))
	if err != nil {
		return nil, err
	}
	if err := s.attachSections(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// PublicPage loads a page, drops hidden sections, decodes each remaining
// section through its codec pair, and renders rich text fields.
func (s *service) PublicPage(ctx context.Context, pageSlug string) (*PageView, error) {
	page, err := s.GetPage(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	return s.buildPageView(page)
}

// CreateSection adds a section to an existing page with its encoded content.
func (s *service) CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error) {
	if req.PageID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	if req.Content == nil {
		return nil, ErrContentMismatch
	}
	if req.Position < 0 {
		return nil, ErrPositionInvalid
	}
	if err := req.Content.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.pages.GetByID(ctx, req.PageID); err != nil {
		return nil, err
	}

	rows, err := Encode(req.Content)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}
	record := &Section{
		ID:        s.id(),
		PageID:    req.PageID,
		Type:      req.Content.SectionType(),
		Title:     strings.TrimSpace(req.Title),
		Position:  req.Position,
		IsVisible: visible,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.sections.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.stampRows(created.ID, rows, now)
	if err := s.inputs.Replace(ctx, created.ID, rows); err != nil {
		return nil, err
	}
	created.Inputs = rows

	s.invalidateContentCaches(ctx)
	return created, nil
}

// GetSection loads one section with its input rows.
func (s *service) GetSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	if id == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.inputs.ListBySection(ctx, id)
	if err != nil {
		return nil, err
	}
	sortInputs(rows)
	section.Inputs = rows
	return section, nil
}

// UpdateSection validates the typed payload and replaces the section's input
// rows wholesale. The replace runs as one atomic operation, so concurrent
// readers never observe a section stripped of its inputs.
func (s *service) UpdateSection(ctx context.Context, req UpdateSectionRequest) (*Section, error) {
	if req.SectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	if req.Content == nil {
		return nil, ErrContentMismatch
	}
	if err := req.Content.Validate(); err != nil {
		return nil, err
	}

	section, err := s.sections.GetByID(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	if section.Type != req.Content.SectionType() {
		return nil, ErrContentMismatch
	}

	rows, err := Encode(req.Content)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.stampRows(section.ID, rows, now)
	if err := s.inputs.Replace(ctx, section.ID, rows); err != nil {
		s.logger.Error("section input replace failed", "section_id", section.ID.String(), "error", err)
		return nil, err
	}

	section.UpdatedAt = now
	updated, err := s.sections.Update(ctx, section)
	if err != nil {
		return nil, err
	}
	updated.Inputs = rows

	s.invalidateContentCaches(ctx)
	return updated, nil
}

// SetSectionVisibility toggles whether a section renders publicly. Content is
// untouched.
func (s *service) SetSectionVisibility(ctx context.Context, id uuid.UUID, visible bool) (*Section, error) {
	if id == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	section.IsVisible = visible
	section.UpdatedAt = s.now()
	updated, err := s.sections.Update(ctx, section)
	if err != nil {
		return nil, err
	}
	s.invalidateContentCaches(ctx)
	return updated, nil
}

// ReorderSection moves a section within its page's render sequence.
func (s *service) ReorderSection(ctx context.Context, id uuid.UUID, position int) (*Section, error) {
	if id == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	if position < 0 {
		return nil, ErrPositionInvalid
	}
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	section.Position = position
	section.UpdatedAt = s.now()
	updated, err := s.sections.Update(ctx, section)
	if err != nil {
		return nil, err
	}
	s.invalidateContentCaches(ctx)
	return updated, nil
}

func (s *service) attachSections(ctx context.Context, page *Page) error {
	list, err := s.sections.ListByPage(ctx, page.ID)
	if err != nil {
		return err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })

	ids := make([]uuid.UUID, 0, len(list))
	for _, section := range list {
		ids = append(ids, section.ID)
	}
	rows, err := s.inputs.ListBySections(ctx, ids)
	if err != nil {
		return err
	}

	bySection := make(map[uuid.UUID][]*Input, len(list))
	for _, row := range rows {
		bySection[row.SectionID] = append(bySection[row.SectionID], row)
	}
	for _, section := range list {
		inputs := bySection[section.ID]
		sortInputs(inputs)
		section.Inputs = inputs
	}
	page.Sections = list
	return nil
}

func (s *service) stampRows(sectionID uuid.UUID, rows []*Input, now time.Time) {
	for _, row := range rows {
		row.ID = s.id()
		row.SectionID = sectionID
		row.CreatedAt = now
	}
}

func (s *service) invalidateContentCaches(ctx context.Context) {
	for _, invalidate := range []func(context.Context) error{
		s.pages.InvalidateCache,
		s.sections.InvalidateCache,
		s.inputs.InvalidateCache,
	} {
		if err := invalidate(ctx); err != nil {
			s.logger.Warn("content cache invalidation failed", "error", err)
		}
	}
}

func sortInputs(rows []*Input) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
}
