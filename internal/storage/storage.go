package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/nawras-digital/sitecms/internal/catalog"
	"github.com/nawras-digital/sitecms/internal/contacts"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/internal/settings"
	"github.com/nawras-digital/sitecms/internal/visits"
)

// Driver selects the SQL backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open connects to the configured database and wraps it with the matching bun
// dialect.
func Open(driver Driver, dsn string) (*bun.DB, error) {
	switch driver {
	case DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}

// Models lists every persisted model in creation order.
func Models() []any {
	return []any{
		(*sections.Page)(nil),
		(*sections.Section)(nil),
		(*sections.Input)(nil),
		(*catalog.Service)(nil),
		(*catalog.Feature)(nil),
		(*catalog.Client)(nil),
		(*contacts.Contact)(nil),
		(*settings.Settings)(nil),
		(*visits.Visit)(nil),
	}
}

// CreateSchema creates every table if it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}
