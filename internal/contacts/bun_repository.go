package contacts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository backed by bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Contact]
}

// NewBunRepository creates a contact repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	repo := repository.MustNewRepository(db, repository.ModelHandlers[*Contact]{
		NewRecord: func() *Contact { return &Contact{} },
		GetID: func(c *Contact) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Contact, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Contact) string {
			if c == nil {
				return ""
			}
			return c.ID.String()
		},
	})
	return &BunRepository{db: db, repo: repo}
}

func (r *BunRepository) Create(ctx context.Context, record *Contact) (*Contact, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Contact, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Contact, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	return records, err
}

// MarkRead flips is_read in one UPDATE so a concurrent delete cannot interleave
// with a read-modify-write.
func (r *BunRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewUpdate().
		Model((*Contact)(nil)).
		Set("is_read = ?", true).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("contact repository error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contact repository error: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Key: id.String()}
	}
	return nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Contact{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func (r *BunRepository) CountUnread(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*Contact)(nil)).
		Where("?TableAlias.is_read = ?", false).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("contact repository error: %w", err)
	}
	return count, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("contact repository error: %w", err)
}
