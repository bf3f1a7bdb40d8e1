package catalog

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

// BunRepository implements Repository for one catalog entity type with
// optional caching.
type BunRepository[T Record] struct {
	db           *bun.DB
	repo         repository.Repository[T]
	newRecord    func() T
	resource     string
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunRepository creates a repository without caching.
func NewBunRepository[T Record](db *bun.DB, newRecord func() T) *BunRepository[T] {
	return NewBunRepositoryWithCache(db, newRecord, nil, nil)
}

// NewBunRepositoryWithCache creates a repository with caching services.
func NewBunRepositoryWithCache[T Record](db *bun.DB, newRecord func() T, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository[T] {
	base := repository.MustNewRepository(db, repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID: func(r T) uuid.UUID {
			return r.GetID()
		},
		SetID: func(r T, id uuid.UUID) {
			r.SetID(id)
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r T) string {
			return r.GetID().String()
		},
	})

	resource := newRecord().Resource()
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = resource + cache.KeySeparator
	}
	return &BunRepository[T]{
		db:           db,
		repo:         base,
		newRecord:    newRecord,
		resource:     resource,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunRepository[T]) Create(ctx context.Context, record T) (T, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		var zero T
		return zero, r.mapError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository[T]) List(ctx context.Context, onlyActive bool) ([]T, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if onlyActive {
				q = q.Where("?TableAlias.is_active = ?", true)
			}
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunRepository[T]) Update(ctx context.Context, record T) (T, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		var zero T
		return zero, r.mapError(err, record.GetID().String())
	}
	return updated, nil
}

func (r *BunRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	record := r.newRecord()
	record.SetID(id)
	if err := r.repo.Delete(ctx, record); err != nil {
		return r.mapError(err, id.String())
	}
	return nil
}

// ToggleActive flips is_active in one UPDATE statement so concurrent toggles
// serialize at the database instead of racing through read-modify-write.
func (r *BunRepository[T]) ToggleActive(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewUpdate().
		Model(r.newRecord()).
		Set("is_active = NOT is_active").
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%s repository error: %w", r.resource, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s repository error: %w", r.resource, err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: r.resource, Key: id.String()}
	}
	return r.InvalidateCache(ctx)
}

func (r *BunRepository[T]) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunRepository[T]) mapError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: r.resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", r.resource, err)
}
