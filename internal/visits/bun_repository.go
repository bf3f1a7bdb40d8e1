package visits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// BunRepository implements Repository backed by bun. The aggregate queries run
// directly against the visits table; the dashboard snapshot above memoizes
// them.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository creates the visit repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Insert(ctx context.Context, record *Visit) (*Visit, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, fmt.Errorf("visit repository error: %w", err)
	}
	return record, nil
}

func (r *BunRepository) FindRecent(ctx context.Context, ip, path string, since time.Time) (*Visit, error) {
	record := &Visit{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.ip = ?", ip).
		Where("?TableAlias.path = ?", path).
		Where("?TableAlias.created_at >= ?", since).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("visit repository error: %w", err)
	}
	return record, nil
}

func (r *BunRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	q := r.db.NewSelect().Model((*Visit)(nil))
	if !from.IsZero() {
		q = q.Where("?TableAlias.created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("?TableAlias.created_at < ?", to)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("visit repository error: %w", err)
	}
	return count, nil
}

func (r *BunRepository) DistinctIPsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.NewSelect().
		Model((*Visit)(nil)).
		ColumnExpr("COUNT(DISTINCT ?TableAlias.ip)").
		Where("?TableAlias.created_at >= ?", since).
		Scan(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("visit repository error: %w", err)
	}
	return count, nil
}

func (r *BunRepository) GroupByCountry(ctx context.Context) ([]CountryStat, error) {
	var rows []CountryStat
	err := r.db.NewSelect().
		Model((*Visit)(nil)).
		ColumnExpr("?TableAlias.country_code AS code").
		ColumnExpr("?TableAlias.country_name AS name").
		ColumnExpr("COUNT(*) AS count").
		GroupExpr("?TableAlias.country_code, ?TableAlias.country_name").
		OrderExpr("count DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("visit repository error: %w", err)
	}
	return rows, nil
}
