package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// BunRepository implements Repository backed by bun.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository creates the settings repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Get(ctx context.Context) (*Settings, error) {
	record := &Settings{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", SingletonID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return record, nil
}

// Upsert writes the singleton row at its fixed identifier. Insert and update
// collapse into one statement, so there is no existence-check race.
func (r *BunRepository) Upsert(ctx context.Context, record *Settings) (*Settings, error) {
	record.ID = SingletonID
	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("site_name = EXCLUDED.site_name").
		Set("logo = EXCLUDED.logo").
		Set("email = EXCLUDED.email").
		Set("phone = EXCLUDED.phone").
		Set("address_ar = EXCLUDED.address_ar").
		Set("address_en = EXCLUDED.address_en").
		Set("social_links = EXCLUDED.social_links").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return r.Get(ctx)
}
