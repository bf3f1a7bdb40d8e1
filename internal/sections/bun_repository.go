package sections

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	pageNamespace    = "page"
	sectionNamespace = "section"
	inputNamespace   = "input"
)

// BunPageRepository implements PageRepository with optional caching.
type BunPageRepository struct {
	repo         repository.Repository[*Page]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunPageRepository creates a page repository without caching.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache creates a page repository with caching services.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	return &BunPageRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  cachePrefix(svc, pageNamespace),
	}
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "page", slug)
	}
	return record, nil
}

func (r *BunPageRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunPageRepository) InvalidateCache(ctx context.Context) error {
	return invalidatePrefix(ctx, r.cacheService, r.cachePrefix)
}

// BunSectionRepository implements SectionRepository with optional caching.
type BunSectionRepository struct {
	repo         repository.Repository[*Section]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunSectionRepository creates a section repository without caching.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return NewBunSectionRepositoryWithCache(db, nil, nil)
}

// NewBunSectionRepositoryWithCache creates a section repository with caching services.
func NewBunSectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSectionRepository {
	base := NewSectionRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	return &BunSectionRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  cachePrefix(svc, sectionNamespace),
	}
}

func (r *BunSectionRepository) Create(ctx context.Context, record *Section) (*Section, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "section", id.String())
	}
	return record, nil
}

func (r *BunSectionRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunSectionRepository) Update(ctx context.Context, record *Section) (*Section, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "section", record.ID.String())
	}
	return updated, nil
}

func (r *BunSectionRepository) InvalidateCache(ctx context.Context) error {
	return invalidatePrefix(ctx, r.cacheService, r.cachePrefix)
}

// BunInputRepository implements InputRepository with optional caching.
type BunInputRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Input]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunInputRepository creates an input repository without caching.
func NewBunInputRepository(db *bun.DB) *BunInputRepository {
	return NewBunInputRepositoryWithCache(db, nil, nil)
}

// NewBunInputRepositoryWithCache creates an input repository with caching services.
func NewBunInputRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunInputRepository {
	base := NewInputRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	return &BunInputRepository{
		db:           db,
		repo:         base,
		cacheService: svc,
		cachePrefix:  cachePrefix(svc, inputNamespace),
	}
}

func (r *BunInputRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*Input, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.section_id = ?", sectionID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunInputRepository) ListBySections(ctx context.Context, sectionIDs []uuid.UUID) ([]*Input, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.section_id IN (?)", bun.In(sectionIDs)).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

// Replace swaps a section's full input row set inside a single transaction, so
// a concurrent reader sees either the old rows or the new rows, never an empty
// section.
func (r *BunInputRepository) Replace(ctx context.Context, sectionID uuid.UUID, rows []*Input) error {
	if r.db == nil {
		return fmt.Errorf("input repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Input)(nil)).
			Where("?TableAlias.section_id = ?", sectionID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete section inputs: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().
			Model(&rows).
			Exec(ctx); err != nil {
			return fmt.Errorf("insert section inputs: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.InvalidateCache(ctx)
}

func (r *BunInputRepository) InvalidateCache(ctx context.Context) error {
	return invalidatePrefix(ctx, r.cacheService, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func cachePrefix(svc cache.CacheService, namespace string) string {
	if svc == nil || namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}

func invalidatePrefix(ctx context.Context, svc cache.CacheService, prefix string) error {
	if svc == nil || prefix == "" {
		return nil
	}
	return svc.DeleteByPrefix(ctx, prefix)
}
